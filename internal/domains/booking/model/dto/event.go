package dto

import (
	"github.com/google/uuid"

	"travelbook/internal/domains/booking/model"
	"travelbook/shared/constant"
	"travelbook/shared/timezone"
)

const (
	EventBookingCreated   = "booking.created"
	EventBookingCancelled = "booking.cancelled"
)

// BookingEvent is the envelope published to the booking events topic after a
// ledger transaction commits. Consumers drive side effects from it, such as
// confirmation notifications.
type BookingEvent struct {
	EventID    string `json:"eventId"`
	Type       string `json:"type"`
	BookingID  int64  `json:"bookingId"`
	ServiceID  int64  `json:"serviceId"`
	UserID     string `json:"userId"`
	Status     string `json:"status"`
	TotalPrice string `json:"totalPrice"`
	OccurredAt string `json:"occurredAt"`
}

func NewBookingEvent(eventType string, booking model.Booking) BookingEvent {
	return BookingEvent{
		EventID:    uuid.NewString(),
		Type:       eventType,
		BookingID:  booking.ID,
		ServiceID:  booking.ServiceID,
		UserID:     booking.UserID,
		Status:     booking.Status,
		TotalPrice: booking.TotalPrice,
		OccurredAt: timezone.Format(timezone.Now(), constant.DateFormat),
	}
}

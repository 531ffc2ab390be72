package model

import (
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx/types"

	serviceModel "travelbook/internal/domains/service/model"
	"travelbook/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID           = "id"
	FieldUserID       = "user_id"
	FieldServiceID    = "service_id"
	FieldStatus       = "status"
	FieldCheckInDate  = "check_in_date"
	FieldCheckOutDate = "check_out_date"
	FieldGuests       = "guests"
	FieldTotalPrice   = "total_price"
	FieldDetails      = "booking_details"
)

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

// ServiceSnapshot is the denormalized service state stored with a booking,
// so historical display stays stable when the service record changes later.
type ServiceSnapshot struct {
	ServiceName string `json:"serviceName"`
	ServiceType string `json:"serviceType"`
	Location    string `json:"location"`
	UnitPrice   string `json:"unitPrice"`
}

type Booking struct {
	ID             int64          `db:"id"`
	UserID         string         `db:"user_id"`
	ServiceID      int64          `db:"service_id"`
	Status         string         `db:"status"`
	CheckInDate    *time.Time     `db:"check_in_date"`
	CheckOutDate   *time.Time     `db:"check_out_date"`
	Guests         int            `db:"guests"`
	TotalPrice     string         `db:"total_price"`
	BookingDetails types.JSONText `db:"booking_details"`
	model.Metadata
	BookedService
}

// BookedService carries the joined service columns of a booking row.
// Nullable, the join is a LEFT JOIN.
type BookedService struct {
	ServiceName     *string        `db:"service_name"     column:"name"     table:"services"`
	ServiceType     *string        `db:"service_type"     column:"type"     table:"services"`
	ServiceLocation *string        `db:"service_location" column:"location" table:"services"`
	ServicePrice    *string        `db:"service_price"    column:"price"    table:"services"`
	ServiceImages   types.JSONText `db:"service_images"   column:"images"   table:"services"`
}

func (Booking) GetJoinQuery() string {
	return "LEFT JOIN services ON services.id = bookings.service_id"
}

// SnapshotService freezes the relevant service attributes into the booking
// details from the row the ledger transaction has locked.
func (b *Booking) SnapshotService(svc serviceModel.Service) error {
	snapshot := ServiceSnapshot{
		ServiceName: svc.Name,
		ServiceType: svc.Type,
		Location:    svc.Location,
		UnitPrice:   svc.Price,
	}

	encoded, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}

	b.BookingDetails = types.JSONText(encoded)

	return nil
}

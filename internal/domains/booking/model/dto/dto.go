package dto

import (
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx/types"

	"travelbook/internal/domains/booking/model"
	"travelbook/shared/constant"
	gDto "travelbook/shared/dto"
	gModel "travelbook/shared/model"
	"travelbook/shared/timezone"
)

type CreateBookingRequest struct {
	ServiceID    int64  `json:"serviceId"    validate:"required,gt=0"`
	CheckInDate  string `json:"checkInDate"  validate:"omitempty,dateonly"`
	CheckOutDate string `json:"checkOutDate" validate:"omitempty,dateonly"`
	Guests       int    `json:"guests"       validate:"required,min=1,max=20"`
	TotalPrice   string `json:"totalPrice"   validate:"required,decimal"`
}

// ToModel builds the booking row. The service snapshot is attached later,
// inside the ledger transaction, from the locked service row.
func (c *CreateBookingRequest) ToModel(userID string) (model.Booking, error) {
	var checkIn, checkOut *time.Time

	if c.CheckInDate != "" {
		parsed, err := time.ParseInLocation(constant.DateOnlyFormat, c.CheckInDate, timezone.GetLocation())
		if err != nil {
			return model.Booking{}, err
		}

		checkIn = &parsed
	}

	if c.CheckOutDate != "" {
		parsed, err := time.ParseInLocation(constant.DateOnlyFormat, c.CheckOutDate, timezone.GetLocation())
		if err != nil {
			return model.Booking{}, err
		}

		checkOut = &parsed
	}

	return model.Booking{
		UserID:       userID,
		ServiceID:    c.ServiceID,
		Status:       model.StatusConfirmed,
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
		Guests:       c.Guests,
		TotalPrice:   c.TotalPrice,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
		},
	}, nil
}

type BookedServiceResponse struct {
	Name     *string  `json:"name"`
	Type     *string  `json:"type"`
	Location *string  `json:"location"`
	Price    *string  `json:"price"`
	Images   []string `json:"images"`
}

type BookingResponse struct {
	ID             int64                  `json:"id"`
	UserID         string                 `json:"userId"`
	ServiceID      int64                  `json:"serviceId"`
	Status         string                 `json:"status"`
	CheckInDate    *string                `json:"checkInDate"`
	CheckOutDate   *string                `json:"checkOutDate"`
	Guests         int                    `json:"guests"`
	TotalPrice     string                 `json:"totalPrice"`
	BookingDetails map[string]any         `json:"bookingDetails"`
	Service        *BookedServiceResponse `json:"service,omitempty"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(mod model.Booking) {
	r.ID = mod.ID
	r.UserID = mod.UserID
	r.ServiceID = mod.ServiceID
	r.Status = mod.Status
	r.CheckInDate = formatDate(mod.CheckInDate)
	r.CheckOutDate = formatDate(mod.CheckOutDate)
	r.Guests = mod.Guests
	r.TotalPrice = mod.TotalPrice
	r.BookingDetails = decodeDetails(mod.BookingDetails)
	r.Metadata.FromModel(mod.Metadata)

	if mod.ServiceName != nil {
		r.Service = &BookedServiceResponse{
			Name:     mod.ServiceName,
			Type:     mod.ServiceType,
			Location: mod.ServiceLocation,
			Price:    mod.ServicePrice,
			Images:   decodeImages(mod.ServiceImages),
		}
	}
}

type GetBookingsResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking) {
	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

func formatDate(date *time.Time) *string {
	if date == nil {
		return nil
	}

	formatted := timezone.Format(*date, constant.DateOnlyFormat)

	return &formatted
}

func decodeDetails(raw types.JSONText) map[string]any {
	details := map[string]any{}

	if len(raw) == 0 {
		return details
	}

	if err := json.Unmarshal(raw, &details); err != nil {
		return map[string]any{}
	}

	return details
}

func decodeImages(raw types.JSONText) []string {
	images := []string{}

	if len(raw) == 0 {
		return images
	}

	if err := json.Unmarshal(raw, &images); err != nil {
		return []string{}
	}

	return images
}

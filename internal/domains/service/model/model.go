package model

import (
	"github.com/jmoiron/sqlx/types"

	"travelbook/shared/model"
)

const (
	TableName  = "services"
	EntityName = "service"

	FieldID            = "id"
	FieldName          = "name"
	FieldType          = "type"
	FieldDescription   = "description"
	FieldLocation      = "location"
	FieldPrice         = "price"
	FieldRating        = "rating"
	FieldTotalReviews  = "total_reviews"
	FieldImages        = "images"
	FieldAmenities     = "amenities"
	FieldAvailability  = "availability"
	FieldActive        = "is_active"
	FieldCheckInTime   = "check_in_time"
	FieldCheckOutTime  = "check_out_time"
	FieldDepartureTime = "departure_time"
	FieldArrivalTime   = "arrival_time"
	FieldRoute         = "route"
	FieldDuration      = "duration"
)

const (
	TypeHotel = "hotel"
	TypeBus   = "bus"
)

// Service is a bookable travel product, either a hotel stay or a bus trip.
// Hotel and bus specific columns are nullable and only one group is set per row.
type Service struct {
	ID            int64          `db:"id"`
	Name          string         `db:"name"`
	Type          string         `db:"type"`
	Description   *string        `db:"description"`
	Location      string         `db:"location"`
	Price         string         `db:"price"`
	Rating        *string        `db:"rating"`
	TotalReviews  int            `db:"total_reviews"`
	Images        types.JSONText `db:"images"`
	Amenities     types.JSONText `db:"amenities"`
	Availability  int            `db:"availability"`
	IsActive      bool           `db:"is_active"`
	CheckInTime   *string        `db:"check_in_time"`
	CheckOutTime  *string        `db:"check_out_time"`
	DepartureTime *string        `db:"departure_time"`
	ArrivalTime   *string        `db:"arrival_time"`
	Route         *string        `db:"route"`
	Duration      *string        `db:"duration"`
	model.Metadata
}

package dto

import (
	"encoding/json"
	"net/url"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx/types"

	"travelbook/internal/domains/service/model"
	"travelbook/shared"
	gDto "travelbook/shared/dto"
	"travelbook/shared/failure"
)

// SearchServicesCriteria is an immutable set of optional search predicates.
// Build it with CriteriaFromQuery, never mutate it afterwards.
type SearchServicesCriteria struct {
	Destination string
	Type        string
	CheckIn     string
	CheckOut    string
	Guests      *int
	MinPrice    *float64
	MaxPrice    *float64
	MinRating   *float64
	Amenities   []string
}

// CriteriaFromQuery parses and validates search predicates from URL query
// values. Unknown service types and non-numeric bounds are rejected.
func CriteriaFromQuery(values url.Values) (SearchServicesCriteria, error) {
	criteria := SearchServicesCriteria{
		Destination: strings.TrimSpace(values.Get("destination")),
		CheckIn:     values.Get("checkIn"),
		CheckOut:    values.Get("checkOut"),
	}

	if serviceType := values.Get("type"); serviceType != "" {
		if serviceType != model.TypeHotel && serviceType != model.TypeBus {
			return criteria, failure.BadRequestFromString("type must be one of: hotel, bus")
		}

		criteria.Type = serviceType
	}

	numbers := map[string]**float64{
		"minPrice": &criteria.MinPrice,
		"maxPrice": &criteria.MaxPrice,
		"rating":   &criteria.MinRating,
	}

	for param, target := range numbers {
		raw := values.Get(param)
		if raw == "" {
			continue
		}

		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed < 0 {
			return criteria, failure.BadRequestFromString(param + " must be a non-negative number")
		}

		*target = &parsed
	}

	if raw := values.Get("guests"); raw != "" {
		guests, err := strconv.Atoi(raw)
		if err != nil || guests < 1 {
			return criteria, failure.BadRequestFromString("guests must be a positive integer")
		}

		criteria.Guests = &guests
	}

	if raw := values.Get("amenities"); raw != "" {
		for _, amenity := range strings.Split(raw, ",") {
			if amenity = strings.TrimSpace(amenity); amenity != "" {
				criteria.Amenities = append(criteria.Amenities, amenity)
			}
		}
	}

	return criteria, nil
}

// ToFilter translates the criteria into the WHERE predicates of a search.
// Only active services are searchable.
func (c SearchServicesCriteria) ToFilter() gDto.FilterGroup {
	filters := []any{
		gDto.Filter{
			Field:    model.FieldActive,
			Value:    true,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		},
	}

	if c.Destination != "" {
		filters = append(filters, gDto.Filter{
			Field:    model.FieldLocation,
			Value:    c.Destination,
			Operator: gDto.FilterOperatorLike,
			Table:    model.TableName,
		})
	}

	if c.Type != "" {
		filters = append(filters, gDto.Filter{
			Field:    model.FieldType,
			Value:    c.Type,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		})
	}

	if c.MinPrice != nil {
		filters = append(filters, gDto.Filter{
			ArgName:  "min_price",
			Field:    model.FieldPrice,
			Value:    *c.MinPrice,
			Operator: gDto.FilterOperatorGreaterEq,
			Table:    model.TableName,
		})
	}

	if c.MaxPrice != nil {
		filters = append(filters, gDto.Filter{
			ArgName:  "max_price",
			Field:    model.FieldPrice,
			Value:    *c.MaxPrice,
			Operator: gDto.FilterOperatorLessEq,
			Table:    model.TableName,
		})
	}

	if c.MinRating != nil {
		filters = append(filters, gDto.Filter{
			ArgName:  "min_rating",
			Field:    model.FieldRating,
			Value:    *c.MinRating,
			Operator: gDto.FilterOperatorGreaterEq,
			Table:    model.TableName,
		})
	}

	if len(c.Amenities) > 0 {
		encoded, _ := json.Marshal(c.Amenities)

		filters = append(filters, gDto.Filter{
			Field:    model.FieldAmenities,
			Value:    string(encoded),
			Operator: gDto.FilterOperatorContains,
			Table:    model.TableName,
		})
	}

	return gDto.FilterGroup{
		Filters:  filters,
		Operator: gDto.FilterGroupOperatorAnd,
	}
}

type ServiceResponse struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	Type          string   `json:"type"`
	Description   *string  `json:"description"`
	Location      string   `json:"location"`
	Price         string   `json:"price"`
	Rating        *string  `json:"rating"`
	TotalReviews  int      `json:"totalReviews"`
	Images        []string `json:"images"`
	Amenities     []string `json:"amenities"`
	Availability  int      `json:"availability"`
	IsActive      bool     `json:"isActive"`
	CheckInTime   *string  `json:"checkInTime,omitempty"`
	CheckOutTime  *string  `json:"checkOutTime,omitempty"`
	DepartureTime *string  `json:"departureTime,omitempty"`
	ArrivalTime   *string  `json:"arrivalTime,omitempty"`
	Route         *string  `json:"route,omitempty"`
	Duration      *string  `json:"duration,omitempty"`
	gDto.Metadata
}

func (r *ServiceResponse) FromModel(mod model.Service) {
	r.ID = mod.ID
	r.Name = mod.Name
	r.Type = mod.Type
	r.Description = mod.Description
	r.Location = mod.Location
	r.Price = mod.Price
	r.Rating = mod.Rating
	r.TotalReviews = mod.TotalReviews
	r.Images = decodeStringArray(mod.Images)
	r.Amenities = decodeStringArray(mod.Amenities)
	r.Availability = mod.Availability
	r.IsActive = mod.IsActive
	r.CheckInTime = mod.CheckInTime
	r.CheckOutTime = mod.CheckOutTime
	r.DepartureTime = mod.DepartureTime
	r.ArrivalTime = mod.ArrivalTime
	r.Route = mod.Route
	r.Duration = mod.Duration
	r.Metadata.FromModel(mod.Metadata)
}

type GetServicesResponse struct {
	Services  []ServiceResponse `json:"services"`
	TotalPage int               `json:"totalPage"`
	TotalData int               `json:"totalData"`
}

func (r *GetServicesResponse) FromModels(models []model.Service, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Services = make([]ServiceResponse, len(models))
	for i, mod := range models {
		r.Services[i].FromModel(mod)
	}
}

type AvailabilityResponse struct {
	Available bool `json:"available"`
	Count     int  `json:"count"`
}

// FromModel reports a service as bookable only while it is active, since the
// booking transaction rejects inactive services regardless of remaining units.
// The raw counter is returned either way.
func (r *AvailabilityResponse) FromModel(mod model.Service) {
	r.Available = mod.IsActive && mod.Availability > 0
	r.Count = mod.Availability
}

func decodeStringArray(raw types.JSONText) []string {
	values := []string{}

	if len(raw) == 0 {
		return values
	}

	if err := json.Unmarshal(raw, &values); err != nil {
		return []string{}
	}

	return values
}

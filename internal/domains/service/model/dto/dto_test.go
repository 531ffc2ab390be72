package dto_test

import (
	"net/url"
	"testing"

	"github.com/jmoiron/sqlx/types"
	"github.com/stretchr/testify/assert"

	"travelbook/internal/domains/service/model"
	"travelbook/internal/domains/service/model/dto"
	gDto "travelbook/shared/dto"
)

func TestCriteriaFromQuery(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		wantErr bool
		check   func(t *testing.T, criteria dto.SearchServicesCriteria)
	}{
		{
			name:  "full query",
			query: "destination=New+York&type=hotel&minPrice=50&maxPrice=150&rating=4&guests=2&amenities=WiFi,Spa",
			check: func(t *testing.T, criteria dto.SearchServicesCriteria) {
				assert.Equal(t, "New York", criteria.Destination)
				assert.Equal(t, model.TypeHotel, criteria.Type)
				assert.Equal(t, 50.0, *criteria.MinPrice)
				assert.Equal(t, 150.0, *criteria.MaxPrice)
				assert.Equal(t, 4.0, *criteria.MinRating)
				assert.Equal(t, 2, *criteria.Guests)
				assert.Equal(t, []string{"WiFi", "Spa"}, criteria.Amenities)
			},
		},
		{
			name:  "empty query",
			query: "",
			check: func(t *testing.T, criteria dto.SearchServicesCriteria) {
				assert.Empty(t, criteria.Destination)
				assert.Nil(t, criteria.MinPrice)
				assert.Nil(t, criteria.Guests)
			},
		},
		{
			name:    "unknown service type",
			query:   "type=train",
			wantErr: true,
		},
		{
			name:    "negative price bound",
			query:   "minPrice=-10",
			wantErr: true,
		},
		{
			name:    "non numeric rating",
			query:   "rating=best",
			wantErr: true,
		},
		{
			name:    "zero guests",
			query:   "guests=0",
			wantErr: true,
		},
		{
			name:  "amenities with blanks",
			query: "amenities=WiFi,+,AC",
			check: func(t *testing.T, criteria dto.SearchServicesCriteria) {
				assert.Equal(t, []string{"WiFi", "AC"}, criteria.Amenities)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.query)
			assert.NoError(t, err)

			criteria, err := dto.CriteriaFromQuery(values)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				tt.check(t, criteria)
			}
		})
	}
}

func TestSearchServicesCriteria_ToFilter(t *testing.T) {
	t.Run("empty criteria keeps the active predicate", func(t *testing.T) {
		filter := dto.SearchServicesCriteria{}.ToFilter()

		assert.Equal(t, gDto.FilterGroupOperatorAnd, filter.Operator)
		assert.Len(t, filter.Filters, 1)

		where, args := filter.GetWhereClause()
		assert.Contains(t, where, "services.is_active = :is_active")
		assert.Equal(t, true, args["is_active"])
	})

	t.Run("full criteria builds every predicate", func(t *testing.T) {
		minPrice, maxPrice, minRating := 50.0, 150.0, 4.0

		criteria := dto.SearchServicesCriteria{
			Destination: "New York",
			Type:        model.TypeHotel,
			MinPrice:    &minPrice,
			MaxPrice:    &maxPrice,
			MinRating:   &minRating,
			Amenities:   []string{"WiFi"},
		}

		filter := criteria.ToFilter()
		assert.Len(t, filter.Filters, 6)

		where, args := filter.GetWhereClause()
		assert.Contains(t, where, "LOWER(services.location) LIKE LOWER(:location)")
		assert.Contains(t, where, "services.type = :type")
		assert.Contains(t, where, "services.price >= :min_price")
		assert.Contains(t, where, "services.price <= :max_price")
		assert.Contains(t, where, "services.rating >= :min_rating")
		assert.Contains(t, where, "services.amenities @> :amenities")
		assert.Equal(t, `["WiFi"]`, args["amenities"])
	})
}

func TestServiceResponse_FromModel(t *testing.T) {
	description := "Luxury hotel in the heart of downtown"
	rating := "4.20"
	checkIn := "3:00 PM"

	mod := model.Service{
		ID:           1,
		Name:         "Grand Plaza Hotel",
		Type:         model.TypeHotel,
		Description:  &description,
		Location:     "Downtown, New York",
		Price:        "89.00",
		Rating:       &rating,
		TotalReviews: 124,
		Images:       types.JSONText(`["https://example.com/a.jpg"]`),
		Amenities:    types.JSONText(`["Free WiFi","Spa"]`),
		Availability: 15,
		IsActive:     true,
		CheckInTime:  &checkIn,
	}

	var res dto.ServiceResponse
	res.FromModel(mod)

	assert.Equal(t, int64(1), res.ID)
	assert.Equal(t, "Grand Plaza Hotel", res.Name)
	assert.Equal(t, []string{"https://example.com/a.jpg"}, res.Images)
	assert.Equal(t, []string{"Free WiFi", "Spa"}, res.Amenities)
	assert.Equal(t, "3:00 PM", *res.CheckInTime)
	assert.Nil(t, res.Route)
}

func TestGetServicesResponse_FromModels(t *testing.T) {
	models := []model.Service{
		{ID: 1, Name: "Grand Plaza Hotel", Type: model.TypeHotel},
		{ID: 2, Name: "Express Bus Lines", Type: model.TypeBus},
	}

	var res dto.GetServicesResponse
	res.FromModels(models, 25, 10)

	assert.Len(t, res.Services, 2)
	assert.Equal(t, 25, res.TotalData)
	assert.Equal(t, 3, res.TotalPage)
}

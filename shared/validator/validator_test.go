package validator_test

import (
	"strings"
	"testing"

	"travelbook/shared/validator"
)

type bookingRequest struct {
	ServiceID    int64  `validate:"required,gt=0"           json:"serviceId"`
	CheckInDate  string `validate:"omitempty,dateonly"      json:"checkInDate"`
	CheckOutDate string `validate:"omitempty,dateonly"      json:"checkOutDate"`
	Guests       int    `validate:"required,min=1,max=20"   json:"guests"`
	TotalPrice   string `validate:"required,decimal"        json:"totalPrice"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name        string
		data        *bookingRequest
		expectError bool
	}{
		{
			name: "valid request",
			data: &bookingRequest{
				ServiceID:    1,
				CheckInDate:  "2026-09-01",
				CheckOutDate: "2026-09-03",
				Guests:       2,
				TotalPrice:   "178.00",
			},
			expectError: false,
		},
		{
			name: "dates are optional",
			data: &bookingRequest{
				ServiceID:  1,
				Guests:     1,
				TotalPrice: "24.00",
			},
			expectError: false,
		},
		{
			name: "missing service id",
			data: &bookingRequest{
				Guests:     2,
				TotalPrice: "178.00",
			},
			expectError: true,
		},
		{
			name: "malformed date",
			data: &bookingRequest{
				ServiceID:   1,
				CheckInDate: "01-09-2026",
				Guests:      2,
				TotalPrice:  "178.00",
			},
			expectError: true,
		},
		{
			name: "too many guests",
			data: &bookingRequest{
				ServiceID:  1,
				Guests:     21,
				TotalPrice: "178.00",
			},
			expectError: true,
		},
		{
			name: "non numeric total price",
			data: &bookingRequest{
				ServiceID:  1,
				Guests:     2,
				TotalPrice: "free",
			},
			expectError: true,
		},
		{
			name: "negative total price",
			data: &bookingRequest{
				ServiceID:  1,
				Guests:     2,
				TotalPrice: "-10.00",
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(tt.data)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

func TestValidateVar(t *testing.T) {
	tests := []struct {
		name        string
		field       interface{}
		tag         string
		expectError bool
	}{
		{
			name:        "valid date only string",
			field:       "2026-09-01",
			tag:         "dateonly",
			expectError: false,
		},
		{
			name:        "invalid date only string",
			field:       "September 1st",
			tag:         "dateonly",
			expectError: true,
		},
		{
			name:        "valid decimal string",
			field:       "89.00",
			tag:         "decimal",
			expectError: false,
		},
		{
			name:        "zero decimal string",
			field:       "0",
			tag:         "decimal",
			expectError: true,
		},
		{
			name:        "valid required string",
			field:       "test",
			tag:         "required",
			expectError: false,
		},
		{
			name:        "empty required string",
			field:       "",
			tag:         "required",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateVar(tt.field, tt.tag)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		jsonBody    string
		expectError bool
	}{
		{
			name:        "valid JSON",
			jsonBody:    `{"serviceId":1,"checkInDate":"2026-09-01","checkOutDate":"2026-09-03","guests":2,"totalPrice":"178.00"}`,
			expectError: false,
		},
		{
			name:        "invalid field value",
			jsonBody:    `{"serviceId":1,"guests":0,"totalPrice":"178.00"}`,
			expectError: true,
		},
		{
			name:        "malformed JSON",
			jsonBody:    `{"serviceId":1,"guests":}`,
			expectError: true,
		},
		{
			name:        "empty JSON",
			jsonBody:    `{}`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := strings.NewReader(tt.jsonBody)
			var data bookingRequest
			err := validator.Validate(reader, &data)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

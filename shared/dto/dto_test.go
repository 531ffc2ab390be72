package dto_test

import (
	"net/http/httptest"
	"testing"

	"travelbook/shared/dto"
)

func TestFilter_GetWhereClause(t *testing.T) {
	tests := []struct {
		name      string
		filter    dto.Filter
		wantWhere string
		wantArgs  map[string]any
	}{
		{
			name: "eq with table",
			filter: dto.Filter{
				Field:    "type",
				Value:    "hotel",
				Operator: dto.FilterOperatorEq,
				Table:    "services",
			},
			wantWhere: "services.type = :type",
			wantArgs:  map[string]any{"type": "hotel"},
		},
		{
			name: "like wraps the value",
			filter: dto.Filter{
				Field:    "location",
				Value:    "New York",
				Operator: dto.FilterOperatorLike,
				Table:    "services",
			},
			wantWhere: "LOWER(services.location) LIKE LOWER(:location) ",
			wantArgs:  map[string]any{"location": "%New York%"},
		},
		{
			name: "greater eq with custom arg name",
			filter: dto.Filter{
				ArgName:  "min_price",
				Field:    "price",
				Value:    50.0,
				Operator: dto.FilterOperatorGreaterEq,
				Table:    "services",
			},
			wantWhere: "services.price >= :min_price",
			wantArgs:  map[string]any{"min_price": 50.0},
		},
		{
			name: "less eq",
			filter: dto.Filter{
				ArgName:  "max_price",
				Field:    "price",
				Value:    150.0,
				Operator: dto.FilterOperatorLessEq,
				Table:    "services",
			},
			wantWhere: "services.price <= :max_price",
			wantArgs:  map[string]any{"max_price": 150.0},
		},
		{
			name: "jsonb contains",
			filter: dto.Filter{
				Field:    "amenities",
				Value:    `["WiFi"]`,
				Operator: dto.FilterOperatorContains,
				Table:    "services",
			},
			wantWhere: "services.amenities @> :amenities",
			wantArgs:  map[string]any{"amenities": `["WiFi"]`},
		},
		{
			name: "is null without table",
			filter: dto.Filter{
				Field:    "check_in_date",
				Operator: dto.FilterIsNull,
			},
			wantWhere: "check_in_date IS NULL",
			wantArgs:  map[string]any{},
		},
		{
			name: "unknown operator yields empty clause",
			filter: dto.Filter{
				Field:    "type",
				Operator: "between",
			},
			wantWhere: "",
			wantArgs:  map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.filter.GetWhereClause()

			if where != tt.wantWhere {
				t.Errorf("expected %q, got %q", tt.wantWhere, where)
			}

			if len(args) != len(tt.wantArgs) {
				t.Fatalf("expected %d args, got %d", len(tt.wantArgs), len(args))
			}

			for key, want := range tt.wantArgs {
				if got := args[key]; got != want {
					t.Errorf("expected arg %s to be %v, got %v", key, want, got)
				}
			}
		})
	}
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	t.Run("empty group yields empty clause", func(t *testing.T) {
		group := dto.FilterGroup{Operator: dto.FilterGroupOperatorAnd}

		where, args := group.GetWhereClause()
		if where != "" {
			t.Errorf("expected empty clause, got %q", where)
		}
		if len(args) != 0 {
			t.Errorf("expected no args, got %v", args)
		}
	})

	t.Run("joins filters with the group operator", func(t *testing.T) {
		group := dto.FilterGroup{
			Filters: []any{
				dto.Filter{Field: "type", Value: "hotel", Operator: dto.FilterOperatorEq, Table: "services"},
				dto.Filter{Field: "is_active", Value: true, Operator: dto.FilterOperatorEq, Table: "services"},
			},
			Operator: dto.FilterGroupOperatorAnd,
		}

		where, args := group.GetWhereClause()

		expected := "(services.type = :type AND services.is_active = :is_active)"
		if where != expected {
			t.Errorf("expected %q, got %q", expected, where)
		}

		if args["type"] != "hotel" || args["is_active"] != true {
			t.Errorf("unexpected args: %v", args)
		}
	})

	t.Run("nested groups are parenthesized", func(t *testing.T) {
		group := dto.FilterGroup{
			Filters: []any{
				dto.Filter{Field: "is_active", Value: true, Operator: dto.FilterOperatorEq},
				dto.FilterGroup{
					Filters: []any{
						dto.Filter{Field: "type", Value: "hotel", Operator: dto.FilterOperatorEq},
						dto.Filter{Field: "type", Value: "bus", Operator: dto.FilterOperatorEq, ArgName: "type_bus"},
					},
					Operator: dto.FilterGroupOperatorOr,
				},
			},
			Operator: dto.FilterGroupOperatorAnd,
		}

		where, _ := group.GetWhereClause()

		expected := "(is_active = :is_active AND (type = :type OR type = :type_bus))"
		if where != expected {
			t.Errorf("expected %q, got %q", expected, where)
		}
	})
}

func TestQueryParams_GetOrdering(t *testing.T) {
	tests := []struct {
		name     string
		params   dto.QueryParams
		expected string
	}{
		{
			name:     "no ordering",
			params:   dto.QueryParams{},
			expected: "",
		},
		{
			name:     "sort by and direction",
			params:   dto.QueryParams{SortBy: "created_at", SortDir: dto.SortDirDesc},
			expected: "created_at DESC",
		},
		{
			name:     "sort by without direction",
			params:   dto.QueryParams{SortBy: "created_at"},
			expected: "",
		},
		{
			name:     "order by wins over sort by",
			params:   dto.QueryParams{OrderBy: "rating DESC NULLS LAST", SortBy: "created_at", SortDir: dto.SortDirAsc},
			expected: "rating DESC NULLS LAST",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.params.GetOrdering(); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name           string
		target         string
		defaultRequest bool
		expected       dto.QueryParams
	}{
		{
			name:           "full query",
			target:         "/api/services?page=2&limit=5&sort_by=price&sort_dir=desc",
			defaultRequest: true,
			expected:       dto.QueryParams{Page: 2, Limit: 5, SortBy: "price", SortDir: dto.SortDirDesc},
		},
		{
			name:           "defaults applied when missing",
			target:         "/api/services",
			defaultRequest: true,
			expected:       dto.QueryParams{Page: 1, Limit: 10},
		},
		{
			name:           "no defaults when not requested",
			target:         "/api/services",
			defaultRequest: false,
			expected:       dto.QueryParams{},
		},
		{
			name:           "invalid values are ignored",
			target:         "/api/services?page=abc&limit=-5&sort_dir=sideways",
			defaultRequest: true,
			expected:       dto.QueryParams{Page: 1, Limit: 10},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tt.target, nil)

			var params dto.QueryParams
			params.FromRequest(r, tt.defaultRequest)

			if params != tt.expected {
				t.Errorf("expected %+v, got %+v", tt.expected, params)
			}
		})
	}
}

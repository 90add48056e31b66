package dto_test

import (
	"net/http/httptest"
	"staybook/shared/constant"
	"staybook/shared/dto"
	"staybook/shared/model"
	"staybook/shared/timezone"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetadata_FromModel(t *testing.T) {
	created := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	metadata := dto.Metadata{}
	metadata.FromModel(model.Metadata{
		CreatedAt:  created,
		ModifiedAt: created.Add(time.Hour),
		CreatedBy:  "host-1",
		ModifiedBy: "system",
	})

	assert.Equal(t, timezone.Format(created, constant.DateFormat), metadata.CreatedAt)
	assert.Equal(t, timezone.Format(created.Add(time.Hour), constant.DateFormat), metadata.ModifiedAt)
	assert.Equal(t, "host-1", metadata.CreatedBy)
	assert.Equal(t, "system", metadata.ModifiedBy)

	metadata.FromModel(model.Metadata{CreatedAt: created})
	assert.Empty(t, metadata.ModifiedAt)
	assert.Empty(t, metadata.ModifiedBy)
}

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name         string
		query        string
		withDefaults bool
		expected     dto.QueryParams
	}{
		{
			name:     "explicit values",
			query:    "page=2&limit=20&sort_by=Price_Per_Night&sort_dir=asc",
			expected: dto.QueryParams{Page: 2, Limit: 20, SortBy: "price_per_night", SortDir: dto.SortDirAsc},
		},
		{
			name:         "defaults",
			withDefaults: true,
			expected: dto.QueryParams{
				Page:    constant.DefaultValuePage,
				Limit:   constant.DefaultValueLimit,
				SortBy:  constant.DefaultValueSortBy,
				SortDir: constant.DefaultValueSortDir,
			},
		},
		{
			name:     "invalid values are ignored",
			query:    "page=-1&limit=abc&sort_dir=sideways",
			expected: dto.QueryParams{},
		},
		{
			name:     "limit is capped",
			query:    "limit=5000",
			expected: dto.QueryParams{Limit: constant.MaxValueLimit},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest("GET", "/v1/listings?"+tt.query, nil)

			params := dto.QueryParams{}
			params.FromRequest(request, tt.withDefaults)

			assert.Equal(t, tt.expected, params)
		})
	}
}

func TestFilter_GetWhereClause(t *testing.T) {
	tests := []struct {
		name      string
		filter    dto.Filter
		wantWhere string
		wantArgs  map[string]any
	}{
		{
			name:      "eq with table",
			filter:    dto.Filter{Field: "status", Operator: dto.FilterOperatorEq, Value: "ACTIVE", Table: "listings"},
			wantWhere: "listings.status = :status",
			wantArgs:  map[string]any{"status": "ACTIVE"},
		},
		{
			name:      "like is case insensitive",
			filter:    dto.Filter{Field: "city", Operator: dto.FilterOperatorLike, Value: "bog"},
			wantWhere: "LOWER(city) LIKE LOWER(:city)",
			wantArgs:  map[string]any{"city": "%bog%"},
		},
		{
			name:     "empty like renders nothing",
			filter:   dto.Filter{Field: "city", Operator: dto.FilterOperatorLike, Value: ""},
			wantArgs: map[string]any{},
		},
		{
			name:      "in expands named args",
			filter:    dto.Filter{Field: "id", Operator: dto.FilterOperatorIn, Value: []string{"a", "b"}},
			wantWhere: "id IN (:id_0, :id_1)",
			wantArgs:  map[string]any{"id_0": "a", "id_1": "b"},
		},
		{
			name:      "empty in matches nothing",
			filter:    dto.Filter{Field: "id", Operator: dto.FilterOperatorIn, Value: []string{}},
			wantWhere: "FALSE",
			wantArgs:  map[string]any{},
		},
		{
			name:      "custom arg name",
			filter:    dto.Filter{ArgName: "check_in_from", Field: "check_in", Operator: dto.FilterOperatorGreaterEq, Value: "2024-03-01"},
			wantWhere: "check_in >= :check_in_from",
			wantArgs:  map[string]any{"check_in_from": "2024-03-01"},
		},
		{
			name:     "unknown operator",
			filter:   dto.Filter{Field: "id", Operator: "plain", Value: "1=1"},
			wantArgs: map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.filter.GetWhereClause()

			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	group := dto.FilterGroup{
		Filters: []any{
			dto.Filter{Field: "host_id", Operator: dto.FilterOperatorEq, Value: "host-1"},
			dto.Filter{Field: "city", Operator: dto.FilterOperatorLike, Value: ""},
			dto.FilterGroup{
				Operator: dto.FilterGroupOperatorOr,
				Filters: []any{
					dto.Filter{ArgName: "s1", Field: "status", Operator: dto.FilterOperatorEq, Value: "ACTIVE"},
					dto.Filter{ArgName: "s2", Field: "status", Operator: dto.FilterOperatorEq, Value: "PENDING"},
				},
			},
		},
	}

	where, args := group.GetWhereClause()

	assert.Equal(t, "(host_id = :host_id AND (status = :s1 OR status = :s2))", where)
	assert.Equal(t, map[string]any{"host_id": "host-1", "s1": "ACTIVE", "s2": "PENDING"}, args)

	empty := dto.FilterGroup{}
	where, _ = empty.GetWhereClause()
	assert.Empty(t, where)
}

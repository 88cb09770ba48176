package store

import (
	"strings"
	"testing"
	"time"

	"github.com/avvvet/copbrazil-services/internal/registrysvc/models"
	"github.com/stretchr/testify/assert"
)

func TestBuildContributionQuery(t *testing.T) {
	driver := int64(7)
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC)

	tests := []struct {
		name      string
		filter    models.ContributionFilter
		wantWhere string
		wantArgs  []any
	}{
		{name: "no filters", filter: models.ContributionFilter{}, wantWhere: "", wantArgs: nil},
		{name: "driver only", filter: models.ContributionFilter{DriverID: &driver}, wantWhere: "WHERE c.driver_id = $1", wantArgs: []any{driver}},
		{name: "range only", filter: models.ContributionFilter{From: &from, To: &to}, wantWhere: "WHERE c.contributed_at >= $1 AND c.contributed_at <= $2", wantArgs: []any{from, to}},
		{
			name:      "all filters",
			filter:    models.ContributionFilter{DriverID: &driver, From: &from, To: &to},
			wantWhere: "WHERE c.driver_id = $1 AND c.contributed_at >= $2 AND c.contributed_at <= $3",
			wantArgs:  []any{driver, from, to},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args := buildContributionQuery(tt.filter)

			assert.Contains(t, query, "JOIN drivers d ON d.id = c.driver_id")
			assert.True(t, strings.HasSuffix(query, "ORDER BY c.id"))
			if tt.wantWhere == "" {
				assert.NotContains(t, query, "WHERE")
			} else {
				assert.Contains(t, query, tt.wantWhere)
			}
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// amounts travel as JSON numbers, not quoted strings
	decimal.MarshalJSONWithoutQuotes = true
}

// Contribution represents the contributions table in the database.
type Contribution struct {
	ID        int64           `json:"id"`
	DriverID  int64           `json:"driverId"`
	Timestamp Timestamp       `json:"timestamp"`
	Amount    decimal.Decimal `json:"amount"`
}

// ContributionDetail is a contribution flattened with its driver's name.
type ContributionDetail struct {
	ID         int64           `json:"id"`
	DriverID   int64           `json:"driverId"`
	DriverName string          `json:"name"`
	Timestamp  Timestamp       `json:"timestamp"`
	Amount     decimal.Decimal `json:"amount"`
}

// ContributionFilter narrows a contribution listing. Nil fields do not
// constrain the result; present fields are combined with AND.
type ContributionFilter struct {
	DriverID *int64
	From     *time.Time
	To       *time.Time
}

// Match reports whether c satisfies every present filter. The range is inclusive.
func (f ContributionFilter) Match(c Contribution) bool {
	if f.DriverID != nil && c.DriverID != *f.DriverID {
		return false
	}
	ts := c.Timestamp.Time()
	if f.From != nil && ts.Before(*f.From) {
		return false
	}
	if f.To != nil && ts.After(*f.To) {
		return false
	}
	return true
}

package models

import "github.com/shopspring/decimal"

// DriverSummary aggregates the contributions of one driver.
type DriverSummary struct {
	DriverID          int64           `json:"-"`
	Name              string          `json:"name"`
	ContributionCount int64           `json:"contributionCount"`
	TotalAmount       decimal.Decimal `json:"totalAmount"`
}

// DashboardTotals are the registry wide counters of the admin panel.
type DashboardTotals struct {
	DriverCount       int64           `json:"driverCount"`
	ContributionCount int64           `json:"contributionCount"`
	TotalAmount       decimal.Decimal `json:"totalAmount"`
}

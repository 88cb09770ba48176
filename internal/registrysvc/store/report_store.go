package store

import (
	"context"
	"fmt"

	"github.com/avvvet/copbrazil-services/internal/registrysvc/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ReportStore struct {
	db *pgxpool.Pool
}

func NewReportStore(db *pgxpool.Pool) *ReportStore {
	return &ReportStore{db: db}
}

// SummaryByDriver counts and sums contributions per driver. The inner join
// leaves out drivers without contributions.
func (c *ReportStore) SummaryByDriver(ctx context.Context) ([]models.DriverSummary, error) {
	rows, err := c.db.Query(ctx, `
        SELECT
            d.id,
            d.name,
            COUNT(c.id),
            COALESCE(SUM(c.amount), 0)
        FROM drivers d
        JOIN contributions c ON c.driver_id = d.id
        GROUP BY d.id, d.name
        ORDER BY d.id
    `)
	if err != nil {
		return nil, fmt.Errorf("failed to build summary report: %w", err)
	}
	defer rows.Close()

	summaries := []models.DriverSummary{}
	for rows.Next() {
		var s models.DriverSummary
		if err := rows.Scan(&s.DriverID, &s.Name, &s.ContributionCount, &s.TotalAmount); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return summaries, nil
}

func (c *ReportStore) DashboardTotals(ctx context.Context) (models.DashboardTotals, error) {
	var totals models.DashboardTotals

	err := c.db.QueryRow(ctx, `
        SELECT
            (SELECT COUNT(*) FROM drivers),
            COUNT(*),
            COALESCE(SUM(amount), 0)
        FROM contributions
    `).Scan(&totals.DriverCount, &totals.ContributionCount, &totals.TotalAmount)
	if err != nil {
		return models.DashboardTotals{}, fmt.Errorf("failed to compute dashboard totals: %w", err)
	}

	return totals, nil
}

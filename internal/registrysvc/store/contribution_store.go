package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/avvvet/copbrazil-services/internal/registrysvc/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ContributionStore struct {
	db *pgxpool.Pool
}

func NewContributionStore(db *pgxpool.Pool) *ContributionStore {
	return &ContributionStore{db: db}
}

func (s *ContributionStore) CreateContribution(ctx context.Context, c models.Contribution) (models.Contribution, error) {
	// driver_id carries no foreign key so that contributions outlive a
	// deleted driver; existence is checked by the insert itself.
	query := `
		INSERT INTO contributions (driver_id, contributed_at, amount)
		SELECT $1, $2, $3::numeric
		WHERE EXISTS (SELECT 1 FROM drivers WHERE id = $1)
		RETURNING id
	`

	err := s.db.QueryRow(ctx, query, c.DriverID, c.Timestamp.Time(), c.Amount.String()).Scan(&c.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Contribution{}, fmt.Errorf("driver %d: %w", c.DriverID, models.ErrNotFound)
		}
		return models.Contribution{}, fmt.Errorf("failed to create contribution: %w", err)
	}

	return c, nil
}

// ListContributions joins contributions with the owning driver's name and
// applies the present filters conjunctively.
func (s *ContributionStore) ListContributions(ctx context.Context, filter models.ContributionFilter) ([]models.ContributionDetail, error) {
	query, args := buildContributionQuery(filter)

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list contributions: %w", err)
	}
	defer rows.Close()

	items := []models.ContributionDetail{}
	for rows.Next() {
		var (
			item models.ContributionDetail
			ts   time.Time
		)
		if err := rows.Scan(&item.ID, &item.DriverID, &item.DriverName, &ts, &item.Amount); err != nil {
			return nil, err
		}
		item.Timestamp = models.NewTimestamp(ts)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func buildContributionQuery(filter models.ContributionFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)

	if filter.DriverID != nil {
		args = append(args, *filter.DriverID)
		conds = append(conds, fmt.Sprintf("c.driver_id = $%d", len(args)))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		conds = append(conds, fmt.Sprintf("c.contributed_at >= $%d", len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		conds = append(conds, fmt.Sprintf("c.contributed_at <= $%d", len(args)))
	}

	var b strings.Builder
	b.WriteString(`
		SELECT c.id, c.driver_id, d.name, c.contributed_at, c.amount
		FROM contributions c
		JOIN drivers d ON d.id = c.driver_id`)
	if len(conds) > 0 {
		b.WriteString("\n\t\tWHERE ")
		b.WriteString(strings.Join(conds, " AND "))
	}
	b.WriteString("\n\t\tORDER BY c.id")

	return b.String(), args
}

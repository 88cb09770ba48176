package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/avvvet/copbrazil-services/internal/registrysvc/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type DriverStore struct {
	db *pgxpool.Pool
}

func NewDriverStore(db *pgxpool.Pool) *DriverStore {
	return &DriverStore{db: db}
}

func (r *DriverStore) CreateDriver(ctx context.Context, driver models.Driver) (models.Driver, error) {
	query := `
        INSERT INTO drivers (name, national_id, phone, email)
        VALUES ($1, $2, $3, $4)
        RETURNING id;
    `

	err := r.db.QueryRow(ctx, query, driver.Name, driver.NationalID, driver.Phone, driver.Email).Scan(&driver.ID)
	if err != nil {
		if pgCode(err) == uniqueViolation {
			return models.Driver{}, fmt.Errorf("national id %s: %w", driver.NationalID, models.ErrDuplicateKey)
		}
		return models.Driver{}, fmt.Errorf("could not create driver: %w", err)
	}

	return driver, nil
}

func (r *DriverStore) ListDrivers(ctx context.Context) ([]models.Driver, error) {
	rows, err := r.db.Query(ctx, `
        SELECT id, name, national_id, phone, email
        FROM drivers
        ORDER BY id
    `)
	if err != nil {
		return nil, fmt.Errorf("could not list drivers: %w", err)
	}
	defer rows.Close()

	drivers := []models.Driver{}
	for rows.Next() {
		var d models.Driver
		if err := rows.Scan(&d.ID, &d.Name, &d.NationalID, &d.Phone, &d.Email); err != nil {
			return nil, err
		}
		drivers = append(drivers, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return drivers, nil
}

func (r *DriverStore) GetByID(ctx context.Context, id int64) (*models.Driver, error) {
	row := r.db.QueryRow(ctx, `
        SELECT id, name, national_id, phone, email
        FROM drivers
        WHERE id = $1
    `, id)

	return scanDriver(row)
}

func (r *DriverStore) GetByNationalID(ctx context.Context, nationalID string) (*models.Driver, error) {
	row := r.db.QueryRow(ctx, `
        SELECT id, name, national_id, phone, email
        FROM drivers
        WHERE national_id = $1
    `, nationalID)

	return scanDriver(row)
}

func (r *DriverStore) UpdateDriver(ctx context.Context, driver models.Driver) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE drivers
        SET name = $2, national_id = $3, phone = $4, email = $5
        WHERE id = $1
    `, driver.ID, driver.Name, driver.NationalID, driver.Phone, driver.Email)
	if err != nil {
		if pgCode(err) == uniqueViolation {
			return fmt.Errorf("national id %s: %w", driver.NationalID, models.ErrDuplicateKey)
		}
		return fmt.Errorf("could not update driver %d: %w", driver.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("driver %d: %w", driver.ID, models.ErrNotFound)
	}

	return nil
}

// DeleteDriver removes a driver. Its contributions stay in place and drop out
// of the joined listings and reports.
func (r *DriverStore) DeleteDriver(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM drivers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("could not delete driver %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("driver %d: %w", id, models.ErrNotFound)
	}

	return nil
}

func scanDriver(row pgx.Row) (*models.Driver, error) {
	d := &models.Driver{}
	err := row.Scan(
		&d.ID,
		&d.Name,
		&d.NationalID,
		&d.Phone,
		&d.Email,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get driver: %w", err)
	}

	return d, nil
}

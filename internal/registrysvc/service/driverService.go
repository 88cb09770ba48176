package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/avvvet/copbrazil-services/internal/comm"
	"github.com/avvvet/copbrazil-services/internal/registrysvc/broker"
	"github.com/avvvet/copbrazil-services/internal/registrysvc/models"
	log "github.com/sirupsen/logrus"
)

// DriverService struct represents the driver service layer
type DriverService struct {
	driverStore DriverStore
	publisher   broker.Publisher
}

// NewDriverService creates a new DriverService instance
func NewDriverService(driverStore DriverStore, publisher broker.Publisher) *DriverService {
	if publisher == nil {
		publisher = broker.Noop{}
	}
	return &DriverService{
		driverStore: driverStore,
		publisher:   publisher,
	}
}

// RegisterDriver creates a driver unless its national id is already registered.
func (s *DriverService) RegisterDriver(ctx context.Context, driver models.Driver) (*models.Driver, error) {
	if err := validateDriver(driver); err != nil {
		return nil, err
	}

	existing, err := s.driverStore.GetByNationalID(ctx, driver.NationalID)
	switch {
	case err == nil && existing != nil:
		return nil, fmt.Errorf("national id %s: %w", driver.NationalID, models.ErrDuplicateKey)
	case err != nil && !errors.Is(err, models.ErrNotFound):
		return nil, err
	}

	created, err := s.driverStore.CreateDriver(ctx, driver)
	if err != nil {
		return nil, err
	}
	log.Infof("driver %d registered", created.ID)

	publish(s.publisher, comm.DriverRegistered, comm.DriverData{Driver: created})
	return &created, nil
}

func (s *DriverService) ListDrivers(ctx context.Context) ([]models.Driver, error) {
	return s.driverStore.ListDrivers(ctx)
}

func (s *DriverService) GetDriver(ctx context.Context, id int64) (*models.Driver, error) {
	return s.driverStore.GetByID(ctx, id)
}

// UpdateDriver overwrites the fields present in update and keeps the rest.
func (s *DriverService) UpdateDriver(ctx context.Context, id int64, update models.DriverUpdate) (*models.Driver, error) {
	current, err := s.driverStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := update.Apply(*current)
	if err := validateDriver(updated); err != nil {
		return nil, err
	}

	if updated.NationalID != current.NationalID {
		other, err := s.driverStore.GetByNationalID(ctx, updated.NationalID)
		switch {
		case err == nil && other != nil && other.ID != id:
			return nil, fmt.Errorf("national id %s: %w", updated.NationalID, models.ErrDuplicateKey)
		case err != nil && !errors.Is(err, models.ErrNotFound):
			return nil, err
		}
	}

	if err := s.driverStore.UpdateDriver(ctx, updated); err != nil {
		return nil, err
	}

	publish(s.publisher, comm.DriverUpdated, comm.DriverData{Driver: updated})
	return &updated, nil
}

// DeleteDriver removes a driver. Recorded contributions are kept.
func (s *DriverService) DeleteDriver(ctx context.Context, id int64) error {
	if err := s.driverStore.DeleteDriver(ctx, id); err != nil {
		return err
	}
	log.Infof("driver %d deleted", id)

	publish(s.publisher, comm.DriverDeleted, comm.DriverDeletedData{DriverID: id})
	return nil
}

func validateDriver(d models.Driver) error {
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("%w: name must not be empty", models.ErrBadRequest)
	}
	if utf8.RuneCountInString(d.NationalID) != models.NationalIDLength {
		return fmt.Errorf("%w: nationalId must have exactly %d characters", models.ErrBadRequest, models.NationalIDLength)
	}
	if strings.TrimSpace(d.Phone) == "" {
		return fmt.Errorf("%w: phone must not be empty", models.ErrBadRequest)
	}
	return nil
}

package service

import (
	"context"
	"time"

	"github.com/avvvet/copbrazil-services/internal/comm"
	"github.com/avvvet/copbrazil-services/internal/registrysvc/broker"
	"github.com/avvvet/copbrazil-services/internal/registrysvc/models"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type ContributionService struct {
	contributionStore ContributionStore
	driverStore       DriverStore
	publisher         broker.Publisher
	now               func() time.Time
}

func NewContributionService(contributionStore ContributionStore, driverStore DriverStore, publisher broker.Publisher) *ContributionService {
	if publisher == nil {
		publisher = broker.Noop{}
	}
	return &ContributionService{
		contributionStore: contributionStore,
		driverStore:       driverStore,
		publisher:         publisher,
		now:               time.Now,
	}
}

// SetClock replaces the time source used to stamp new contributions.
func (s *ContributionService) SetClock(now func() time.Time) {
	s.now = now
}

// RecordContribution stamps a contribution with the current server time. The
// driver must exist.
func (s *ContributionService) RecordContribution(ctx context.Context, driverID int64, amount decimal.Decimal) (*models.Contribution, error) {
	if _, err := s.driverStore.GetByID(ctx, driverID); err != nil {
		return nil, err
	}

	created, err := s.contributionStore.CreateContribution(ctx, models.Contribution{
		DriverID:  driverID,
		Timestamp: models.NewTimestamp(s.now()),
		Amount:    amount,
	})
	if err != nil {
		return nil, err
	}
	log.Infof("contribution %d recorded for driver %d", created.ID, driverID)

	publish(s.publisher, comm.ContributionRecorded, comm.ContributionData{
		ContributionID: created.ID,
		DriverID:       created.DriverID,
		Amount:         created.Amount,
		Timestamp:      created.Timestamp.String(),
	})
	return &created, nil
}

func (s *ContributionService) ListContributions(ctx context.Context, filter models.ContributionFilter) ([]models.ContributionDetail, error) {
	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return []models.ContributionDetail{}, nil
	}
	return s.contributionStore.ListContributions(ctx, filter)
}

package service

import (
	"context"

	"github.com/avvvet/copbrazil-services/internal/comm"
	"github.com/avvvet/copbrazil-services/internal/registrysvc/broker"
	"github.com/avvvet/copbrazil-services/internal/registrysvc/models"
	log "github.com/sirupsen/logrus"
)

// DriverStore is implemented by store.DriverStore and memory.Store.
type DriverStore interface {
	CreateDriver(ctx context.Context, driver models.Driver) (models.Driver, error)
	ListDrivers(ctx context.Context) ([]models.Driver, error)
	GetByID(ctx context.Context, id int64) (*models.Driver, error)
	GetByNationalID(ctx context.Context, nationalID string) (*models.Driver, error)
	UpdateDriver(ctx context.Context, driver models.Driver) error
	DeleteDriver(ctx context.Context, id int64) error
}

// ContributionStore is implemented by store.ContributionStore and memory.Store.
type ContributionStore interface {
	CreateContribution(ctx context.Context, c models.Contribution) (models.Contribution, error)
	ListContributions(ctx context.Context, filter models.ContributionFilter) ([]models.ContributionDetail, error)
}

// ReportStore is implemented by store.ReportStore and memory.Store.
type ReportStore interface {
	SummaryByDriver(ctx context.Context) ([]models.DriverSummary, error)
	DashboardTotals(ctx context.Context) (models.DashboardTotals, error)
}

// publish sends a change event. Failures are logged only; the mutation has
// already been committed.
func publish(p broker.Publisher, eventType string, payload any) {
	event, err := comm.NewEvent(eventType, payload)
	if err != nil {
		log.Errorf("Error [comm.NewEvent] %s: %s", eventType, err)
		return
	}
	if err := p.Publish(event); err != nil {
		log.Warnf("event %s (%s) not published: %s", event.ID, eventType, err)
	}
}

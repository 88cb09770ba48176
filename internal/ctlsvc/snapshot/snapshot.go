package snapshot

import (
	"context"
	"time"

	"github.com/avvvet/copbrazil-services/internal/comm"
	"github.com/avvvet/copbrazil-services/internal/registrysvc/broker"
	"github.com/avvvet/copbrazil-services/internal/registrysvc/models"
	log "github.com/sirupsen/logrus"
)

type TotalsReader interface {
	DashboardTotals(ctx context.Context) (models.DashboardTotals, error)
}

// Snapshotter polls the dashboard totals and publishes a snapshot event when
// they differ from the last published ones.
type Snapshotter struct {
	reader    TotalsReader
	publisher broker.Publisher
	last      *models.DashboardTotals
}

func NewSnapshotter(reader TotalsReader, publisher broker.Publisher) *Snapshotter {
	return &Snapshotter{reader: reader, publisher: publisher}
}

// Tick reads the totals once. It reports whether a snapshot was published.
func (s *Snapshotter) Tick(ctx context.Context) (bool, error) {
	totals, err := s.reader.DashboardTotals(ctx)
	if err != nil {
		return false, err
	}
	if s.last != nil && sameTotals(*s.last, totals) {
		return false, nil
	}

	event, err := comm.NewEvent(comm.DashboardSnapshot, comm.DashboardData{Totals: totals})
	if err != nil {
		return false, err
	}
	if err := s.publisher.Publish(event); err != nil {
		return false, err
	}
	s.last = &totals
	return true, nil
}

// Run ticks every interval until ctx is done.
func (s *Snapshotter) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if _, err := s.Tick(ctx); err != nil {
			log.Errorf("dashboard snapshot error: %v", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func sameTotals(a, b models.DashboardTotals) bool {
	return a.DriverCount == b.DriverCount &&
		a.ContributionCount == b.ContributionCount &&
		a.TotalAmount.Equal(b.TotalAmount)
}

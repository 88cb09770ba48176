package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/avvvet/copbrazil-services/internal/registrysvc/models"
	"github.com/shopspring/decimal"
)

// Store keeps drivers and contributions in process memory. It enforces the
// same unique national id and foreign key rules as the Postgres schema.
type Store struct {
	mu            sync.RWMutex
	nextDriver    int64
	nextContrib   int64
	drivers       map[int64]models.Driver
	contributions map[int64]models.Contribution
}

func New() *Store {
	return &Store{
		drivers:       map[int64]models.Driver{},
		contributions: map[int64]models.Contribution{},
	}
}

func (s *Store) CreateDriver(_ context.Context, d models.Driver) (models.Driver, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.nationalIDTaken(d.NationalID, 0) {
		return models.Driver{}, fmt.Errorf("national id %s: %w", d.NationalID, models.ErrDuplicateKey)
	}
	s.nextDriver++
	d.ID = s.nextDriver
	d.Email = cloneString(d.Email)
	s.drivers[d.ID] = d
	return d, nil
}

func (s *Store) ListDrivers(_ context.Context) ([]models.Driver, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Driver, 0, len(s.drivers))
	for _, d := range s.drivers {
		d.Email = cloneString(d.Email)
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) GetByID(_ context.Context, id int64) (*models.Driver, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.drivers[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	d.Email = cloneString(d.Email)
	return &d, nil
}

func (s *Store) GetByNationalID(_ context.Context, nationalID string) (*models.Driver, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, d := range s.drivers {
		if d.NationalID == nationalID {
			d.Email = cloneString(d.Email)
			return &d, nil
		}
	}
	return nil, models.ErrNotFound
}

func (s *Store) UpdateDriver(_ context.Context, d models.Driver) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.drivers[d.ID]; !ok {
		return fmt.Errorf("driver %d: %w", d.ID, models.ErrNotFound)
	}
	if s.nationalIDTaken(d.NationalID, d.ID) {
		return fmt.Errorf("national id %s: %w", d.NationalID, models.ErrDuplicateKey)
	}
	d.Email = cloneString(d.Email)
	s.drivers[d.ID] = d
	return nil
}

func (s *Store) DeleteDriver(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.drivers[id]; !ok {
		return fmt.Errorf("driver %d: %w", id, models.ErrNotFound)
	}
	// contributions are kept
	delete(s.drivers, id)
	return nil
}

func (s *Store) CreateContribution(_ context.Context, c models.Contribution) (models.Contribution, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.drivers[c.DriverID]; !ok {
		return models.Contribution{}, fmt.Errorf("driver %d: %w", c.DriverID, models.ErrNotFound)
	}
	s.nextContrib++
	c.ID = s.nextContrib
	s.contributions[c.ID] = c
	return c, nil
}

func (s *Store) ListContributions(_ context.Context, filter models.ContributionFilter) ([]models.ContributionDetail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.ContributionDetail{}
	for _, c := range s.sortedContributions() {
		if !filter.Match(c) {
			continue
		}
		d, ok := s.drivers[c.DriverID]
		if !ok {
			continue
		}
		out = append(out, models.ContributionDetail{
			ID:         c.ID,
			DriverID:   c.DriverID,
			DriverName: d.Name,
			Timestamp:  c.Timestamp,
			Amount:     c.Amount,
		})
	}
	return out, nil
}

func (s *Store) SummaryByDriver(_ context.Context) ([]models.DriverSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byDriver := map[int64]*models.DriverSummary{}
	for _, c := range s.contributions {
		d, ok := s.drivers[c.DriverID]
		if !ok {
			continue
		}
		sum, ok := byDriver[d.ID]
		if !ok {
			sum = &models.DriverSummary{DriverID: d.ID, Name: d.Name, TotalAmount: decimal.Zero}
			byDriver[d.ID] = sum
		}
		sum.ContributionCount++
		sum.TotalAmount = sum.TotalAmount.Add(c.Amount)
	}

	out := make([]models.DriverSummary, 0, len(byDriver))
	for _, sum := range byDriver {
		out = append(out, *sum)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DriverID < out[j].DriverID })
	return out, nil
}

func (s *Store) DashboardTotals(_ context.Context) (models.DashboardTotals, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	totals := models.DashboardTotals{
		DriverCount:       int64(len(s.drivers)),
		ContributionCount: int64(len(s.contributions)),
		TotalAmount:       decimal.Zero,
	}
	for _, c := range s.contributions {
		totals.TotalAmount = totals.TotalAmount.Add(c.Amount)
	}
	return totals, nil
}

// caller holds the lock
func (s *Store) nationalIDTaken(nationalID string, except int64) bool {
	for id, d := range s.drivers {
		if id != except && d.NationalID == nationalID {
			return true
		}
	}
	return false
}

// caller holds the lock
func (s *Store) sortedContributions() []models.Contribution {
	out := make([]models.Contribution, 0, len(s.contributions))
	for _, c := range s.contributions {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

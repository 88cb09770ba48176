package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/avvvet/copbrazil-services/internal/comm"
	"github.com/avvvet/copbrazil-services/internal/registrysvc/models"
	"github.com/avvvet/copbrazil-services/internal/registrysvc/store/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingPublisher struct{ calls int }

func (p *failingPublisher) Publish(comm.Event) error {
	p.calls++
	return errors.New("nats: connection closed")
}

type capturePublisher struct{ events []comm.Event }

func (p *capturePublisher) Publish(e comm.Event) error {
	p.events = append(p.events, e)
	return nil
}

// brokenStore fails every lookup with a storage error.
type brokenStore struct{ *memory.Store }

var errStorage = errors.New("storage unavailable")

func (brokenStore) GetByNationalID(context.Context, string) (*models.Driver, error) {
	return nil, errStorage
}

func (brokenStore) GetByID(context.Context, int64) (*models.Driver, error) {
	return nil, errStorage
}

func strPtr(s string) *string { return &s }

func TestRegisterDriverPublishFailureIsNotFatal(t *testing.T) {
	pub := &failingPublisher{}
	s := NewDriverService(memory.New(), pub)

	d, err := s.RegisterDriver(context.Background(), models.Driver{Name: "A", NationalID: "11111111111", Phone: "1"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), d.ID)
	assert.Equal(t, 1, pub.calls)
}

func TestRegisterDriverStorageError(t *testing.T) {
	s := NewDriverService(brokenStore{memory.New()}, nil)

	_, err := s.RegisterDriver(context.Background(), models.Driver{Name: "A", NationalID: "11111111111", Phone: "1"})
	assert.ErrorIs(t, err, errStorage)
	assert.NotErrorIs(t, err, models.ErrDuplicateKey)
}

func TestRegisterDriverDuplicate(t *testing.T) {
	s := NewDriverService(memory.New(), nil)
	ctx := context.Background()

	_, err := s.RegisterDriver(ctx, models.Driver{Name: "A", NationalID: "11111111111", Phone: "1"})
	require.NoError(t, err)

	_, err = s.RegisterDriver(ctx, models.Driver{Name: "B", NationalID: "11111111111", Phone: "2"})
	assert.ErrorIs(t, err, models.ErrDuplicateKey)
}

func TestValidateDriver(t *testing.T) {
	tests := []struct {
		name    string
		driver  models.Driver
		wantErr bool
	}{
		{name: "valid", driver: models.Driver{Name: "A", NationalID: "12345678901", Phone: "1"}},
		{name: "valid with email", driver: models.Driver{Name: "A", NationalID: "12345678901", Phone: "1", Email: strPtr("a@b.c")}},
		{name: "empty name", driver: models.Driver{NationalID: "12345678901", Phone: "1"}, wantErr: true},
		{name: "long national id", driver: models.Driver{Name: "A", NationalID: "123456789012", Phone: "1"}, wantErr: true},
		{name: "empty phone", driver: models.Driver{Name: "A", NationalID: "12345678901", Phone: " "}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateDriver(tt.driver)
			if tt.wantErr {
				assert.ErrorIs(t, err, models.ErrBadRequest)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestUpdateDriverEvents(t *testing.T) {
	pub := &capturePublisher{}
	s := NewDriverService(memory.New(), pub)
	ctx := context.Background()

	d, err := s.RegisterDriver(ctx, models.Driver{Name: "A", NationalID: "11111111111", Phone: "1"})
	require.NoError(t, err)

	updated, err := s.UpdateDriver(ctx, d.ID, models.DriverUpdate{Email: models.OptionalString{Set: true, Value: strPtr("a@x.com")}})
	require.NoError(t, err)
	require.NotNil(t, updated.Email)
	assert.Equal(t, "a@x.com", *updated.Email)

	_, err = s.UpdateDriver(ctx, 99, models.DriverUpdate{Phone: strPtr("2")})
	assert.ErrorIs(t, err, models.ErrNotFound)

	require.Len(t, pub.events, 2)
	assert.Equal(t, comm.DriverUpdated, pub.events[1].Type)
	assert.JSONEq(t, `{"driver":{"id":1,"name":"A","nationalId":"11111111111","phone":"1","email":"a@x.com"}}`, string(pub.events[1].Data))
}

func TestRecordContributionUsesServerClock(t *testing.T) {
	m := memory.New()
	pub := &capturePublisher{}
	drivers := NewDriverService(m, nil)
	s := NewContributionService(m, m, pub)
	ctx := context.Background()

	at := time.Date(2024, 3, 1, 10, 15, 30, 0, time.Local)
	s.SetClock(func() time.Time { return at })

	_, err := drivers.RegisterDriver(ctx, models.Driver{Name: "A", NationalID: "11111111111", Phone: "1"})
	require.NoError(t, err)

	c, err := s.RecordContribution(ctx, 1, decimal.RequireFromString("-4.5"))
	require.NoError(t, err)
	assert.True(t, c.Timestamp.Time().Equal(at))
	assert.Equal(t, "2024-03-01 10:15:30", c.Timestamp.String())

	require.Len(t, pub.events, 1)
	assert.JSONEq(t, `{"contributionId":1,"driverId":1,"amount":-4.5,"timestamp":"2024-03-01 10:15:30"}`, string(pub.events[0].Data))
}

func TestRecordContributionUnknownDriver(t *testing.T) {
	m := memory.New()
	pub := &capturePublisher{}
	s := NewContributionService(m, m, pub)

	_, err := s.RecordContribution(context.Background(), 999999, decimal.NewFromInt(1))
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.Empty(t, pub.events)

	items, err := s.ListContributions(context.Background(), models.ContributionFilter{})
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestRecordContributionStorageError(t *testing.T) {
	m := memory.New()
	s := NewContributionService(m, brokenStore{m}, nil)

	_, err := s.RecordContribution(context.Background(), 1, decimal.NewFromInt(1))
	assert.ErrorIs(t, err, errStorage)
}

func TestReportService(t *testing.T) {
	m := memory.New()
	drivers := NewDriverService(m, nil)
	contributions := NewContributionService(m, m, nil)
	reports := NewReportService(m)
	ctx := context.Background()

	totals, err := reports.Dashboard(ctx)
	require.NoError(t, err)
	assert.True(t, totals.TotalAmount.IsZero())

	_, err = drivers.RegisterDriver(ctx, models.Driver{Name: "A", NationalID: "11111111111", Phone: "1"})
	require.NoError(t, err)
	_, err = drivers.RegisterDriver(ctx, models.Driver{Name: "B", NationalID: "22222222222", Phone: "2"})
	require.NoError(t, err)
	_, err = contributions.RecordContribution(ctx, 2, decimal.RequireFromString("3.10"))
	require.NoError(t, err)

	summary, err := reports.Summary(ctx)
	require.NoError(t, err)
	require.Len(t, summary, 1)
	assert.Equal(t, "B", summary[0].Name)
	assert.Equal(t, int64(1), summary[0].ContributionCount)
	assert.True(t, summary[0].TotalAmount.Equal(decimal.RequireFromString("3.1")))

	totals, err = reports.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), totals.DriverCount)
	assert.Equal(t, int64(1), totals.ContributionCount)
}

package memory

import (
	"context"
	"testing"
	"time"

	"github.com/avvvet/copbrazil-services/internal/registrysvc/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDriversLifecycle(t *testing.T) {
	s := New()
	ctx := context.Background()

	a, err := s.CreateDriver(ctx, models.Driver{Name: "A", NationalID: "11111111111", Phone: "1"})
	require.NoError(t, err)
	b, err := s.CreateDriver(ctx, models.Driver{Name: "B", NationalID: "22222222222", Phone: "2"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), a.ID)
	assert.Equal(t, int64(2), b.ID)

	_, err = s.CreateDriver(ctx, models.Driver{Name: "C", NationalID: "11111111111", Phone: "3"})
	assert.ErrorIs(t, err, models.ErrDuplicateKey)

	b.NationalID = "11111111111"
	assert.ErrorIs(t, s.UpdateDriver(ctx, b), models.ErrDuplicateKey)
	assert.ErrorIs(t, s.UpdateDriver(ctx, models.Driver{ID: 40}), models.ErrNotFound)

	list, err := s.ListDrivers(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "22222222222", list[1].NationalID)

	require.NoError(t, s.DeleteDriver(ctx, a.ID))
	_, err = s.GetByID(ctx, a.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
	_, err = s.GetByNationalID(ctx, "11111111111")
	assert.ErrorIs(t, err, models.ErrNotFound)

	// ids are never reused
	c, err := s.CreateDriver(ctx, models.Driver{Name: "C", NationalID: "33333333333", Phone: "3"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), c.ID)
}

func TestStoredEmailIsCopied(t *testing.T) {
	s := New()
	ctx := context.Background()

	email := "a@x.com"
	d, err := s.CreateDriver(ctx, models.Driver{Name: "A", NationalID: "11111111111", Phone: "1", Email: &email})
	require.NoError(t, err)
	email = "changed"

	got, err := s.GetByID(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", *got.Email)
}

func TestContributionsAndReports(t *testing.T) {
	s := New()
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	_, err := s.CreateContribution(ctx, models.Contribution{DriverID: 1, Amount: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, models.ErrNotFound)

	for _, nid := range []string{"11111111111", "22222222222", "33333333333"} {
		_, err := s.CreateDriver(ctx, models.Driver{Name: "D" + nid[:1], NationalID: nid, Phone: "1"})
		require.NoError(t, err)
	}
	for i, driverID := range []int64{1, 2, 1} {
		_, err := s.CreateContribution(ctx, models.Contribution{
			DriverID:  driverID,
			Timestamp: models.NewTimestamp(base.AddDate(0, 0, i)),
			Amount:    decimal.NewFromFloat(2.5),
		})
		require.NoError(t, err)
	}

	driver := int64(1)
	items, err := s.ListContributions(ctx, models.ContributionFilter{DriverID: &driver})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, int64(1), items[0].ID)
	assert.Equal(t, int64(3), items[1].ID)
	assert.Equal(t, "D1", items[0].DriverName)

	summary, err := s.SummaryByDriver(ctx)
	require.NoError(t, err)
	require.Len(t, summary, 2)
	assert.Equal(t, int64(1), summary[0].DriverID)
	assert.Equal(t, int64(2), summary[0].ContributionCount)
	assert.True(t, summary[0].TotalAmount.Equal(decimal.NewFromInt(5)))
	assert.Equal(t, int64(2), summary[1].DriverID)

	totals, err := s.DashboardTotals(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), totals.DriverCount)
	assert.Equal(t, int64(3), totals.ContributionCount)
	assert.True(t, totals.TotalAmount.Equal(decimal.NewFromFloat(7.5)))

	require.NoError(t, s.DeleteDriver(ctx, 1))
	require.NoError(t, s.DeleteDriver(ctx, 3))

	// contributions outlive their driver but leave the joined views
	totals, err = s.DashboardTotals(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), totals.ContributionCount)
	items, err = s.ListContributions(ctx, models.ContributionFilter{})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, int64(2), items[0].DriverID)
	summary, err = s.SummaryByDriver(ctx)
	require.NoError(t, err)
	require.Len(t, summary, 1)
	assert.Equal(t, int64(2), summary[0].DriverID)
}

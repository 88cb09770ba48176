package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/avvvet/copbrazil-services/internal/comm"
	"github.com/avvvet/copbrazil-services/internal/registrysvc/models"
	"github.com/avvvet/copbrazil-services/internal/registrysvc/store/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capture struct {
	events []comm.Event
	err    error
}

func (c *capture) Publish(e comm.Event) error {
	if c.err != nil {
		return c.err
	}
	c.events = append(c.events, e)
	return nil
}

func TestTickPublishesOnlyChanges(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	pub := &capture{}
	s := NewSnapshotter(st, pub)

	sent, err := s.Tick(ctx)
	require.NoError(t, err)
	assert.True(t, sent)

	sent, err = s.Tick(ctx)
	require.NoError(t, err)
	assert.False(t, sent)

	d, err := st.CreateDriver(ctx, models.Driver{Name: "A", NationalID: "11111111111", Phone: "1"})
	require.NoError(t, err)
	_, err = st.CreateContribution(ctx, models.Contribution{DriverID: d.ID, Amount: decimal.RequireFromString("12.50")})
	require.NoError(t, err)

	sent, err = s.Tick(ctx)
	require.NoError(t, err)
	assert.True(t, sent)

	require.Len(t, pub.events, 2)
	last := pub.events[1]
	assert.Equal(t, comm.DashboardSnapshot, last.Type)

	var data comm.DashboardData
	require.NoError(t, json.Unmarshal(last.Data, &data))
	assert.Equal(t, int64(1), data.Totals.DriverCount)
	assert.Equal(t, int64(1), data.Totals.ContributionCount)
	assert.True(t, data.Totals.TotalAmount.Equal(decimal.RequireFromString("12.5")))
}

func TestTickRetriesAfterPublishFailure(t *testing.T) {
	pub := &capture{err: errors.New("nats down")}
	s := NewSnapshotter(memory.New(), pub)

	_, err := s.Tick(context.Background())
	assert.Error(t, err)

	pub.err = nil
	sent, err := s.Tick(context.Background())
	require.NoError(t, err)
	assert.True(t, sent)
}

type failingReader struct{}

func (failingReader) DashboardTotals(context.Context) (models.DashboardTotals, error) {
	return models.DashboardTotals{}, errors.New("db down")
}

func TestTickReaderError(t *testing.T) {
	pub := &capture{}
	_, err := NewSnapshotter(failingReader{}, pub).Tick(context.Background())
	assert.EqualError(t, err, "db down")
	assert.Empty(t, pub.events)
}

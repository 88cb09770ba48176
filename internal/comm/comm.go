package comm

import (
	"encoding/json"
	"time"

	"github.com/avvvet/copbrazil-services/internal/registrysvc/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RegistrySubject is the NATS subject registry change events are published on.
const RegistrySubject = "registry.events"

const (
	DriverRegistered     = "driver.registered"
	DriverUpdated        = "driver.updated"
	DriverDeleted        = "driver.deleted"
	ContributionRecorded = "contribution.recorded"
	DashboardSnapshot    = "dashboard.snapshot"
)

// Event is the envelope shared by the registry, feed and audit services.
type Event struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	OccurredAt time.Time       `json:"occurredAt"`
	Data       json.RawMessage `json:"data"`
}

func NewEvent(eventType string, payload any) (Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Event{}, err
	}
	return Event{
		ID:         uuid.New().String(),
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Data:       data,
	}, nil
}

// WSMessage is a frame sent by feed websocket clients.
type WSMessage struct {
	Type string          `json:"type"` // e.g. "ping"
	Data json.RawMessage `json:"data,omitempty"`
}

type DriverData struct {
	Driver models.Driver `json:"driver"`
}

type DriverDeletedData struct {
	DriverID int64 `json:"driverId"`
}

// DashboardData is published by the control service whenever the totals move.
type DashboardData struct {
	Totals models.DashboardTotals `json:"totals"`
}

type ContributionData struct {
	ContributionID int64           `json:"contributionId"`
	DriverID       int64           `json:"driverId"`
	Amount         decimal.Decimal `json:"amount"`
	Timestamp      string          `json:"timestamp"`
}

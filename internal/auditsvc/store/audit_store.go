package store

import (
	"context"
	"fmt"
	"time"

	"github.com/avvvet/copbrazil-services/internal/comm"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const Collection = "registry_events"

// AuditRecord is one registry event as kept in MongoDB.
type AuditRecord struct {
	EventID    string    `bson:"event_id"`
	Type       string    `bson:"type"`
	OccurredAt time.Time `bson:"occurred_at"`
	ReceivedAt time.Time `bson:"received_at"`
	ExpiresAt  time.Time `bson:"expires_at"`
	Data       bson.M    `bson:"data,omitempty"`
}

// NewRecord converts an event. The record expires retention after the event occurred.
func NewRecord(event comm.Event, retention time.Duration, now time.Time) (AuditRecord, error) {
	rec := AuditRecord{
		EventID:    event.ID,
		Type:       event.Type,
		OccurredAt: event.OccurredAt,
		ReceivedAt: now,
		ExpiresAt:  event.OccurredAt.Add(retention),
	}
	if len(event.Data) > 0 {
		var data bson.M
		if err := bson.UnmarshalExtJSON(event.Data, false, &data); err != nil {
			return AuditRecord{}, fmt.Errorf("decode event %s data: %w", event.ID, err)
		}
		rec.Data = data
	}
	return rec, nil
}

type AuditStore struct {
	coll      *mongo.Collection
	retention time.Duration
}

func NewAuditStore(db *mongo.Database, retention time.Duration) *AuditStore {
	return &AuditStore{coll: db.Collection(Collection), retention: retention}
}

func (s *AuditStore) Record(ctx context.Context, event comm.Event) error {
	rec, err := NewRecord(event, s.retention, time.Now().UTC())
	if err != nil {
		return err
	}
	if _, err := s.coll.InsertOne(ctx, rec); err != nil {
		return fmt.Errorf("insert audit record %s: %w", event.ID, err)
	}
	return nil
}

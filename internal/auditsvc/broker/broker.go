package broker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/avvvet/copbrazil-services/internal/comm"
	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"
)

var ErrInvalidEvent = errors.New("invalid registry event")

// Recorder persists registry events.
type Recorder interface {
	Record(ctx context.Context, event comm.Event) error
}

type Broker struct {
	Conn     *nats.Conn
	Recorder Recorder
	Timeout  time.Duration
}

func NewBroker(nc *nats.Conn, recorder Recorder) *Broker {
	return &Broker{
		Conn:     nc,
		Recorder: recorder,
		Timeout:  10 * time.Second,
	}
}

// QueueSubscribe shares the subject among audit instances of the same group.
func (b *Broker) QueueSubscribe(topic, queueGroup string) (*nats.Subscription, error) {
	return b.Conn.QueueSubscribe(topic, queueGroup, b.handleMessage)
}

func (b *Broker) handleMessage(msgNats *nats.Msg) {
	if err := b.Handle(msgNats.Data); err != nil {
		log.Errorf("Error [auditsvc] %s", err)
	}
}

// Handle decodes one event and records it.
func (b *Broker) Handle(data []byte) error {
	event := comm.Event{}
	if err := json.Unmarshal(data, &event); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidEvent, err)
	}
	if event.ID == "" || event.Type == "" {
		return fmt.Errorf("%w: missing id or type", ErrInvalidEvent)
	}

	ctx, cancel := context.WithTimeout(context.Background(), b.Timeout)
	defer cancel()

	if err := b.Recorder.Record(ctx, event); err != nil {
		return err
	}
	log.Infof("audit event %s (%s) recorded", event.ID, event.Type)
	return nil
}

package broker

import (
	"encoding/json"

	"github.com/avvvet/copbrazil-services/internal/comm"
	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"
)

// Publisher sends registry change events to interested services.
type Publisher interface {
	Publish(event comm.Event) error
}

type Broker struct {
	Conn    *nats.Conn
	Subject string
}

func NewBroker(nc *nats.Conn) *Broker {
	return &Broker{
		Conn:    nc,
		Subject: comm.RegistrySubject,
	}
}

// Publish marshals the event and sends it on the registry subject.
func (b *Broker) Publish(event comm.Event) error {
	bytes, err := json.Marshal(event)
	if err != nil {
		return err
	}

	if err := b.Conn.Publish(b.Subject, bytes); err != nil {
		log.Errorf("Error publishing to topic %s: %s", b.Subject, err)
		return err
	}

	log.Debugf("published %s event %s", event.Type, event.ID)
	return nil
}

// Noop drops every event. Used when NATS is not configured.
type Noop struct{}

func (Noop) Publish(comm.Event) error { return nil }

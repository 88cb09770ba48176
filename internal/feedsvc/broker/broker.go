package broker

import (
	"encoding/json"

	"github.com/avvvet/copbrazil-services/internal/comm"
	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"
)

type Broker struct {
	Conn      *nats.Conn
	Broadcast func([]byte) int
}

func NewBroker(conn *nats.Conn, fncBroadcast func([]byte) int) *Broker {
	return &Broker{
		Conn:      conn,
		Broadcast: fncBroadcast,
	}
}

// consume registry events
func (b *Broker) Subscribe(topic string) (*nats.Subscription, error) {
	sub, err := b.Conn.Subscribe(topic, b.handleMessages)
	if err != nil {
		return nil, err
	}

	return sub, nil
}

func (b *Broker) handleMessages(msgNats *nats.Msg) {
	b.Forward(msgNats.Data)
}

// Forward relays a registry event to every websocket client. Payloads that
// are not events are dropped.
func (b *Broker) Forward(data []byte) int {
	event := comm.Event{}
	if err := json.Unmarshal(data, &event); err != nil {
		log.Errorf("Error invalid registry event %s", err)
		return 0
	}
	if event.Type == "" {
		log.Error("Unknown message")
		return 0
	}

	sent := b.Broadcast(data)
	log.Debugf("event %s (%s) sent to %d sockets", event.ID, event.Type, sent)
	return sent
}

package broker

import (
	"context"
	"encoding/json"

	"github.com/avvvet/minigolf-services/internal/comm"
	"github.com/avvvet/minigolf-services/internal/golfsvc/hub"
	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"
)

const gameUpdateTopic = "golf.game.update"

// Broker bridges mutations to live subscribers through NATS. Publishing
// after a write is the outbox step: the data mutation has already
// committed, so publish failures are logged and swallowed. Every service
// instance subscribes to the same subject and feeds its local hub, which
// keeps fan-out working when more than one instance is running.
type Broker struct {
	Conn *nats.Conn
	Hub  *hub.Hub
}

func NewBroker(nc *nats.Conn, h *hub.Hub) *Broker {
	return &Broker{
		Conn: nc,
		Hub:  h,
	}
}

// GameUpdated implements the service layer's Notifier. Fire-and-forget.
func (b *Broker) GameUpdated(ctx context.Context, update comm.GameUpdate) {
	bytes, err := json.Marshal(update)
	if err != nil {
		log.Errorf("unable to marshal game update for %s: %v", update.GameCode, err)
		return
	}

	if err := b.Conn.Publish(gameUpdateTopic, bytes); err != nil {
		log.Errorf("Error publishing to topic %s: %s", gameUpdateTopic, err)
	}
}

// Subscribe wires the update subject into the local hub.
func (b *Broker) Subscribe() (*nats.Subscription, error) {
	sub, err := b.Conn.Subscribe(gameUpdateTopic, b.handleMessage)
	if err != nil {
		return nil, err
	}

	return sub, nil
}

func (b *Broker) handleMessage(msgNats *nats.Msg) {
	update := &comm.GameUpdate{}
	if err := json.Unmarshal(msgNats.Data, update); err != nil {
		log.Errorf("Error nats message %s", err)
		return
	}

	b.Hub.Broadcast(update.GameCode, "game:update", update)
}

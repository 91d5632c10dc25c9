package hub

import (
	"encoding/json"
	"sync"

	log "github.com/sirupsen/logrus"
)

// Subscriber is one live update channel attached to a game. Send pushes a
// named event down the channel; a non-nil error marks the subscriber dead
// and the hub evicts it after the broadcast.
type Subscriber interface {
	ID() string
	Send(event string, data []byte) error
}

// Hub is the registry of live update subscribers keyed by game short code.
// It is constructed once in main and injected wherever delivery is needed;
// a second independent instance would silently split subscribers.
type Hub struct {
	mu   sync.RWMutex
	subs map[string]map[string]Subscriber
}

func NewHub() *Hub {
	return &Hub{
		subs: make(map[string]map[string]Subscriber),
	}
}

func (h *Hub) Subscribe(code string, sub Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.subs[code]
	if !ok {
		set = make(map[string]Subscriber)
		h.subs[code] = set
	}
	set[sub.ID()] = sub
}

// Unsubscribe removes a subscriber and drops the code entry once its set is
// empty, so abandoned games do not accumulate in the registry.
func (h *Hub) Unsubscribe(code, subID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.subs[code]
	if !ok {
		return
	}
	delete(set, subID)
	if len(set) == 0 {
		delete(h.subs, code)
	}
}

// Broadcast serializes the payload once and pushes it to every subscriber
// of the code. Delivery iterates a snapshot, so subscribes and unsubscribes
// during fan-out neither block nor crash. Subscribers whose push fails are
// evicted afterward; liveness is only ever discovered on write.
func (h *Hub) Broadcast(code, event string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Errorf("broadcast: unable to marshal %s payload for game %s: %v", event, code, err)
		return
	}

	h.mu.RLock()
	snapshot := make([]Subscriber, 0, len(h.subs[code]))
	for _, sub := range h.subs[code] {
		snapshot = append(snapshot, sub)
	}
	h.mu.RUnlock()

	var dead []string
	for _, sub := range snapshot {
		if err := sub.Send(event, data); err != nil {
			log.Warnf("broadcast: dropping dead subscriber %s for game %s: %v", sub.ID(), code, err)
			dead = append(dead, sub.ID())
		}
	}

	for _, id := range dead {
		h.Unsubscribe(code, id)
	}
}

// Count returns the number of active subscribers for a game code.
func (h *Hub) Count(code string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[code])
}

// ActiveGames lists every code with at least one subscriber.
func (h *Hub) ActiveGames() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	codes := make([]string, 0, len(h.subs))
	for code := range h.subs {
		codes = append(codes, code)
	}
	return codes
}

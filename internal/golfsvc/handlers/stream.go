package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/avvvet/minigolf-services/internal/comm"
	"github.com/go-chi/chi"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

// sseSubscriber pushes SSE frames to one client. Writes are serialized
// because the heartbeat loop and hub broadcasts run on different
// goroutines.
type sseSubscriber struct {
	id      string
	mu      sync.Mutex
	w       io.Writer
	flusher http.Flusher
}

func (s *sseSubscriber) ID() string { return s.id }

func (s *sseSubscriber) Send(event string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := fmt.Fprintf(s.w, "event: %s\ndata: %s\n\n", event, data); err != nil {
		return err
	}
	if s.flusher != nil {
		s.flusher.Flush()
	}
	return nil
}

// HandleStream is the SSE live update channel: one long-lived, server-to-
// client push connection per game code. The game must exist before the
// stream is established; disconnect promptly unregisters the subscriber.
func (h *Handler) HandleStream(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	if _, err := h.games.GameViewByCode(r.Context(), code); err != nil {
		h.errorResponse(w, err)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		h.CreateResponse(w, Response{Code: http.StatusInternalServerError, Error: "streaming unsupported"})
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // Disable buffering in nginx

	sub := &sseSubscriber{id: uuid.New().String(), w: w, flusher: flusher}
	h.hub.Subscribe(code, sub)
	defer h.hub.Unsubscribe(code, sub.id)

	log.Infof("New stream subscriber %s for game %s", sub.id, code)

	ack, _ := json.Marshal(comm.ConnectedAck{Status: "connected"})
	if err := sub.Send("connected", ack); err != nil {
		return
	}

	// heartbeat keeps intermediary proxies from dropping the idle stream
	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			log.Infof("Stream subscriber %s for game %s disconnected", sub.id, code)
			return
		case t := <-ticker.C:
			hb, _ := json.Marshal(comm.Heartbeat{Time: t.UTC()})
			if err := sub.Send("heartbeat", hb); err != nil {
				return
			}
		}
	}
}

// wsSubscriber pushes hub events down a websocket as Event frames.
type wsSubscriber struct {
	id   string
	mu   sync.Mutex
	conn *websocket.Conn
}

func (s *wsSubscriber) ID() string { return s.id }

func (s *wsSubscriber) Send(event string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteJSON(comm.Event{Event: event, Data: data})
}

// HandleGameSocket is the websocket flavour of the live update channel.
// The channel is receive-only from the client's perspective; inbound
// frames are drained and discarded.
func (h *Handler) HandleGameSocket(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	if _, err := h.games.GameViewByCode(r.Context(), code); err != nil {
		h.errorResponse(w, err)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Errorf("Failed to upgrade to WebSocket: %v", err)
		return
	}

	sub := &wsSubscriber{id: uuid.New().String(), conn: conn}
	h.hub.Subscribe(code, sub)

	log.Infof("New WebSocket subscriber %s for game %s", sub.id, code)

	go h.runSocket(code, sub, conn)
}

func (h *Handler) runSocket(code string, sub *wsSubscriber, conn *websocket.Conn) {
	defer func() {
		log.Infof("Closing WebSocket subscriber %s for game %s", sub.id, code)
		h.hub.Unsubscribe(code, sub.id)
		conn.Close()
	}()

	ack, _ := json.Marshal(comm.ConnectedAck{Status: "connected"})
	if err := sub.Send("connected", ack); err != nil {
		return
	}

	stop := make(chan struct{})
	go func() {
		ticker := time.NewTicker(h.heartbeat)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case t := <-ticker.C:
				hb, _ := json.Marshal(comm.Heartbeat{Time: t.UTC()})
				if err := sub.Send("heartbeat", hb); err != nil {
					return
				}
			}
		}
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Errorf("WebSocket unexpected close error for subscriber %s: %v", sub.id, err)
			}
			break
		}
	}

	close(stop)
}

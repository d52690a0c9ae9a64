package handler

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/yourorg/hoteldesk/internal/observability/metrics"
)

// Notifier publishes desk events to connected clients. EventsHub
// implements it; a nil Notifier is ignored.
type Notifier interface {
	Publish(eventType, message string)
}

// Event is one desk event pushed to connected clients
type Event struct {
	Type    string    `json:"type"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// EventsHub handles WebSocket connections on /ws/events and broadcasts desk
// events (auto check-outs, staff changes) to every connected client. A slow
// client is dropped rather than allowed to stall the broadcast.
type EventsHub struct {
	mu             sync.Mutex
	clients        map[*websocket.Conn]struct{}
	logger         *slog.Logger
	allowedOrigins []string
}

// NewEventsHub creates a new events hub
func NewEventsHub(logger *slog.Logger, allowedOrigins []string) *EventsHub {
	if logger == nil {
		logger = slog.Default()
	}

	return &EventsHub{
		clients:        make(map[*websocket.Conn]struct{}),
		logger:         logger,
		allowedOrigins: allowedOrigins,
	}
}

func (h *EventsHub) getUpgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				// Allow requests with no origin (e.g., non-browser clients)
				return true
			}
			for _, allowed := range h.allowedOrigins {
				if origin == allowed {
					return true
				}
			}
			h.logger.Warn("websocket origin rejected", slog.String("origin", origin))
			return false
		},
	}
}

// ServeHTTP upgrades the connection and keeps it registered until the
// client goes away
func (h *EventsHub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	upgrader := h.getUpgrader()
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", slog.String("error", err.Error()))
		return
	}

	h.mu.Lock()
	h.clients[ws] = struct{}{}
	h.mu.Unlock()
	metrics.EventClientConnected()

	h.logger.Debug("event stream client connected", slog.String("remote", r.RemoteAddr))

	// Read loop exists only to notice the close; clients never send data.
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}

	h.mu.Lock()
	delete(h.clients, ws)
	h.mu.Unlock()
	ws.Close()
	metrics.EventClientDisconnected()
}

// Publish broadcasts an event to all connected clients
func (h *EventsHub) Publish(eventType, message string) {
	event := Event{Type: eventType, Message: message, At: time.Now()}

	h.mu.Lock()
	defer h.mu.Unlock()

	for ws := range h.clients {
		ws.SetWriteDeadline(time.Now().Add(5 * time.Second))
		if err := ws.WriteJSON(event); err != nil {
			h.logger.Debug("dropping slow event stream client", slog.String("error", err.Error()))
			delete(h.clients, ws)
			ws.Close()
			metrics.EventClientDisconnected()
		}
	}
}

// Close disconnects all clients, used during shutdown
func (h *EventsHub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for ws := range h.clients {
		ws.Close()
		delete(h.clients, ws)
		metrics.EventClientDisconnected()
	}
}

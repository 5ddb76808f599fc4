// internal/app/features/alerts/hub.go
package alerts

import (
	"context"

	"github.com/dalemusser/riskwatch/internal/domain/models"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Hub fans alert events out to every connected browser over WebSocket.
// Connections are owned by a single run goroutine and touched only there,
// so no locking is needed.
type Hub struct {
	connections    map[*websocket.Conn]bool
	registerChan   chan *websocket.Conn
	unregisterChan chan *websocket.Conn
	broadcastChan  chan any
	countChan      chan chan int
	ctx            context.Context
	cancel         context.CancelFunc
	log            *zap.Logger
}

// NewHub creates a hub and starts its run goroutine. Stop the hub by
// cancelling ctx or calling Stop.
func NewHub(ctx context.Context, logger *zap.Logger) *Hub {
	hubCtx, cancel := context.WithCancel(ctx)

	h := &Hub{
		connections:    make(map[*websocket.Conn]bool),
		registerChan:   make(chan *websocket.Conn, 10),
		unregisterChan: make(chan *websocket.Conn, 10),
		broadcastChan:  make(chan any, 100),
		countChan:      make(chan chan int, 10),
		ctx:            hubCtx,
		cancel:         cancel,
		log:            logger,
	}

	go h.run()
	return h
}

func (h *Hub) run() {
	defer func() {
		for conn := range h.connections {
			_ = conn.Close()
		}
	}()

	for {
		select {
		case conn := <-h.registerChan:
			h.connections[conn] = true
			h.log.Debug("stream client connected", zap.Int("clients", len(h.connections)))

		case conn := <-h.unregisterChan:
			if _, exists := h.connections[conn]; exists {
				delete(h.connections, conn)
				_ = conn.Close()
				h.log.Debug("stream client disconnected", zap.Int("clients", len(h.connections)))
			}

		case message := <-h.broadcastChan:
			for conn := range h.connections {
				if err := conn.WriteJSON(message); err != nil {
					delete(h.connections, conn)
					_ = conn.Close()
				}
			}

		case responseChan := <-h.countChan:
			responseChan <- len(h.connections)

		case <-h.ctx.Done():
			return
		}
	}
}

// Register adds a browser connection to the hub.
func (h *Hub) Register(conn *websocket.Conn) {
	select {
	case h.registerChan <- conn:
	case <-h.ctx.Done():
	}
}

// Unregister removes a browser connection and closes it.
func (h *Hub) Unregister(conn *websocket.Conn) {
	select {
	case h.unregisterChan <- conn:
	case <-h.ctx.Done():
	}
}

// Broadcast sends a message to all connected browsers.
func (h *Hub) Broadcast(message any) {
	select {
	case h.broadcastChan <- message:
	case <-h.ctx.Done():
	}
}

// ClientCount returns the current number of connected browsers.
func (h *Hub) ClientCount() int {
	responseChan := make(chan int, 1)
	select {
	case h.countChan <- responseChan:
		return <-responseChan
	case <-h.ctx.Done():
		return 0
	}
}

// Stop shuts the hub down and closes every connection.
func (h *Hub) Stop() {
	h.cancel()
}

// streamEvent is the JSON shape pushed to browsers.
type streamEvent struct {
	Type         string        `json:"type"`
	Alert        *models.Alert `json:"alert,omitempty"`
	AlertID      string        `json:"alert_id,omitempty"`
	Acknowledged bool          `json:"acknowledged,omitempty"`
	Resolved     bool          `json:"resolved,omitempty"`
	ActiveAlerts int           `json:"active_alerts,omitempty"`
}

// Deliver pushes a freshly received alert to all browsers. Implements the
// notify channel's Deliverer, making the hub the in-page delivery channel;
// sound and desktop presentation are gated client-side by the settings.
func (h *Hub) Deliver(alert models.Alert, settings models.NotificationSettings) error {
	h.Broadcast(streamEvent{Type: "student_alert", Alert: &alert})
	return nil
}

// NotifyUpdate pushes an acknowledge/resolve flip to all browsers.
func (h *Hub) NotifyUpdate(alertID string, acknowledged, resolved bool) {
	h.Broadcast(streamEvent{
		Type:         "alert_update",
		AlertID:      alertID,
		Acknowledged: acknowledged,
		Resolved:     resolved,
	})
}

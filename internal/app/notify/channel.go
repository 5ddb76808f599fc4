// internal/app/notify/channel.go

// Package notify maintains the live alert channel: a long-lived WebSocket
// connection to the prediction service's push endpoint, the local list of
// active alerts it feeds, and fan-out to delivery channels.
//
// Connection lifecycle: disconnected → connecting → connected. Any read
// error or close drops back to disconnected and schedules a reconnect on a
// fixed 5-second interval (no backoff growth). The initial dial counts as
// attempt 1; after 5 consecutive failed attempts the channel stays
// disconnected until Connect is called again explicitly. A successful
// connection resets the attempt counter and stops any pending retry timer.
package notify

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dalemusser/riskwatch/internal/domain/models"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Status is the channel's connection state.
type Status string

const (
	StatusDisconnected Status = "disconnected"
	StatusConnecting   Status = "connecting"
	StatusConnected    Status = "connected"
)

// Defaults for the reconnect policy.
const (
	DefaultReconnectInterval = 5 * time.Second
	DefaultMaxAttempts       = 5
)

// ErrClosed is returned by Connect after Close.
var ErrClosed = errors.New("notify: channel closed")

// Conn is the subset of a WebSocket connection the channel needs. Satisfied
// by *websocket.Conn; tests substitute fakes.
type Conn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Dialer opens a push connection to url.
type Dialer func(ctx context.Context, url string) (Conn, error)

// WebSocketDialer dials with gorilla's default dialer.
func WebSocketDialer(ctx context.Context, url string) (Conn, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

// Actions persists acknowledge/resolve decisions to the upstream alert API.
type Actions interface {
	Acknowledge(ctx context.Context, alertID string) error
	Resolve(ctx context.Context, alertID string) error
}

// HistoryStore mirrors alert state to storage so the active list survives
// restarts. All methods are best-effort from the channel's point of view.
type HistoryStore interface {
	Insert(ctx context.Context, alert models.Alert) error
	SetAcknowledged(ctx context.Context, alertID string) error
	SetResolved(ctx context.Context, alertID string) error
}

// SettingsFunc returns the current notification settings. Consulted on every
// inbound alert so settings changes take effect without restarting anything.
type SettingsFunc func() models.NotificationSettings

// Config assembles a Channel.
type Config struct {
	StreamURL string
	Dial      Dialer       // nil means WebSocketDialer
	Actions   Actions      // nil disables acknowledge/resolve persistence
	Settings  SettingsFunc // nil means defaults (notifications on)
	History   HistoryStore // optional
	Logger    *zap.Logger

	ReconnectInterval time.Duration // 0 means DefaultReconnectInterval
	MaxAttempts       int           // 0 means DefaultMaxAttempts
}

// Channel is the live alert channel. Safe for concurrent use.
type Channel struct {
	streamURL string
	dial      Dialer
	actions   Actions
	settings  SettingsFunc
	history   HistoryStore
	log       *zap.Logger
	interval  time.Duration
	maxTries  int

	mu         sync.Mutex
	status     Status
	attempts   int
	conn       Conn
	retryTimer *time.Timer
	closed     bool
	alerts     []models.Alert
	serverSeen int // active-alert count reported in the connection handshake
	deliverers []Deliverer
}

// NewChannel builds a disconnected channel; call Connect to start it.
func NewChannel(cfg Config) *Channel {
	c := &Channel{
		streamURL: cfg.StreamURL,
		dial:      cfg.Dial,
		actions:   cfg.Actions,
		settings:  cfg.Settings,
		history:   cfg.History,
		log:       cfg.Logger,
		interval:  cfg.ReconnectInterval,
		maxTries:  cfg.MaxAttempts,
		status:    StatusDisconnected,
	}
	if c.dial == nil {
		c.dial = WebSocketDialer
	}
	if c.settings == nil {
		c.settings = func() models.NotificationSettings {
			return models.DefaultNotificationSettings()
		}
	}
	if c.log == nil {
		c.log = zap.NewNop()
	}
	if c.interval <= 0 {
		c.interval = DefaultReconnectInterval
	}
	if c.maxTries <= 0 {
		c.maxTries = DefaultMaxAttempts
	}
	return c
}

// AddDeliverer registers a delivery side-channel. Deliverers run on every
// accepted alert; one failing deliverer degrades only itself.
func (c *Channel) AddDeliverer(d Deliverer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deliverers = append(c.deliverers, d)
}

// Connect dials the push endpoint. On failure it schedules the fixed-interval
// reconnect loop and returns the dial error. Calling Connect on a connected
// or connecting channel is a no-op; calling it on a channel that exhausted
// its attempts starts a fresh attempt series.
func (c *Channel) Connect(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if c.status != StatusDisconnected {
		c.mu.Unlock()
		return nil
	}
	c.status = StatusConnecting
	c.attempts++
	attempt := c.attempts
	c.mu.Unlock()

	conn, err := c.dial(ctx, c.streamURL)
	if err != nil {
		c.log.Warn("alert stream dial failed",
			zap.String("url", c.streamURL),
			zap.Int("attempt", attempt),
			zap.Error(err))
		c.mu.Lock()
		c.status = StatusDisconnected
		c.mu.Unlock()
		c.scheduleReconnect()
		return err
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		_ = conn.Close()
		return ErrClosed
	}
	c.conn = conn
	c.status = StatusConnected
	c.attempts = 0
	if c.retryTimer != nil {
		c.retryTimer.Stop()
		c.retryTimer = nil
	}
	c.mu.Unlock()

	c.log.Info("alert stream connected", zap.String("url", c.streamURL))
	go c.readLoop(conn)
	return nil
}

// scheduleReconnect arms the retry timer unless one is already pending, the
// channel is closed, or the attempt budget is spent.
func (c *Channel) scheduleReconnect() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || c.retryTimer != nil {
		return
	}
	if c.attempts >= c.maxTries {
		c.log.Warn("alert stream reconnect attempts exhausted; staying disconnected",
			zap.Int("attempts", c.attempts))
		return
	}

	c.retryTimer = time.AfterFunc(c.interval, func() {
		c.mu.Lock()
		c.retryTimer = nil
		c.mu.Unlock()
		_ = c.Connect(context.Background())
	})
}

func (c *Channel) readLoop(conn Conn) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			c.mu.Lock()
			stale := c.conn != conn
			closed := c.closed
			if !stale {
				c.conn = nil
				c.status = StatusDisconnected
			}
			c.mu.Unlock()

			if !stale && !closed {
				c.log.Warn("alert stream disconnected", zap.Error(err))
				c.scheduleReconnect()
			}
			return
		}
		c.handleMessage(data)
	}
}

// Close tears the channel down: the retry timer is released (the one
// cancellable resource here) and the connection is closed. The channel
// cannot be reused afterward.
func (c *Channel) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	if c.retryTimer != nil {
		c.retryTimer.Stop()
		c.retryTimer = nil
	}
	conn := c.conn
	c.conn = nil
	c.status = StatusDisconnected
	c.mu.Unlock()

	if conn != nil {
		_ = conn.Close()
	}
	c.log.Info("alert channel closed")
}

// StatusInfo is a point-in-time view of the channel for status endpoints.
type StatusInfo struct {
	Status       Status `json:"status"`
	Attempts     int    `json:"attempts"`
	ActiveAlerts int    `json:"active_alerts"`
	ServerSeen   int    `json:"server_seen,omitempty"`
}

// Info returns the current connection status and alert counts.
func (c *Channel) Info() StatusInfo {
	c.mu.Lock()
	defer c.mu.Unlock()
	return StatusInfo{
		Status:       c.status,
		Attempts:     c.attempts,
		ActiveAlerts: len(c.alerts),
		ServerSeen:   c.serverSeen,
	}
}

// Status returns the connection state.
func (c *Channel) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Alerts returns a copy of the active alert list, newest first.
func (c *Channel) Alerts() []models.Alert {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.Alert, len(c.alerts))
	copy(out, c.alerts)
	return out
}

// Restore seeds the active list from persisted history, newest first.
// Called once at startup before Connect.
func (c *Channel) Restore(alerts []models.Alert) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.alerts = append([]models.Alert(nil), alerts...)
}

// ClearAll empties the active alert list (the user-facing "clear" action).
// Server-side state is untouched.
func (c *Channel) ClearAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.alerts = nil
}

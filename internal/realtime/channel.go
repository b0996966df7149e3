package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
)

// Conn is a live event connection. Events are delivered in transport
// order on the Events channel, which is closed when the connection
// reports permanent closure. Close is safe to call more than once.
type Conn interface {
	Events() <-chan Event
	Err() error
	Close() error
}

// Dialer opens an authenticated event connection. The handshake carries
// the bearer token of the session the channel belongs to.
type Dialer interface {
	Dial(ctx context.Context, token string) (Conn, error)
}

// WebsocketDialer dials the dashboard's websocket endpoint.
type WebsocketDialer struct {
	// URL is the ws:// or wss:// endpoint of the event stream.
	URL string

	Log *zap.Logger
}

// Dial opens a websocket connection authenticated with token and starts
// its read and ping loops.
func (d *WebsocketDialer) Dial(ctx context.Context, token string) (Conn, error) {
	header := http.Header{}
	header.Set("Authorization", "Bearer "+token)

	ws, resp, err := websocket.DefaultDialer.DialContext(ctx, d.URL, header)
	if err != nil {
		if resp != nil {
			resp.Body.Close()
		}
		return nil, err
	}

	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}

	ch := &channel{
		ws:     ws,
		events: make(chan Event, 16),
		done:   make(chan struct{}),
		log:    log,
	}
	go ch.readPump()
	go ch.pingLoop()
	return ch, nil
}

// channel is the gorilla/websocket implementation of Conn.
type channel struct {
	ws     *websocket.Conn
	events chan Event
	done   chan struct{}
	log    *zap.Logger

	closeOnce sync.Once

	mu  sync.Mutex
	err error
}

func (c *channel) Events() <-chan Event { return c.events }

// Err returns the error that terminated the read pump, if any.
func (c *channel) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Close tears down the websocket. The read pump observes the closed
// socket, exits, and closes the events channel.
func (c *channel) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.done)
		deadline := time.Now().Add(writeWait)
		_ = c.ws.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
		err = c.ws.Close()
	})
	return err
}

// readPump reads frames until the connection dies. Malformed frames are
// logged and skipped; they never terminate the channel.
func (c *channel) readPump() {
	defer func() {
		_ = c.Close()
		close(c.events)
	}()

	c.ws.SetReadLimit(maxMessageSize)
	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Warn("event channel read failed", zap.Error(err))
			}
			c.mu.Lock()
			c.err = err
			c.mu.Unlock()
			return
		}

		var ev Event
		if err := json.Unmarshal(data, &ev); err != nil {
			c.log.Warn("dropping malformed push frame", zap.Error(err))
			continue
		}
		if ev.Type == "" {
			c.log.Warn("dropping push frame without type")
			continue
		}

		select {
		case c.events <- ev:
		case <-c.done:
			return
		}
	}
}

// pingLoop keeps the connection alive until it is closed.
func (c *channel) pingLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			deadline := time.Now().Add(writeWait)
			if err := c.ws.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				return
			}
		}
	}
}

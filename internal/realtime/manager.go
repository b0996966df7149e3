// Package realtime maintains the live event connection to the dashboard
// backend and delivers pushed events to the rest of the client. At most
// one connection exists at a time, and only while the session is
// authenticated.
package realtime

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/hamzaahmad3006/Project-Management-System-sub001/internal/model"
)

// dialTimeout bounds a single connection attempt.
const dialTimeout = 15 * time.Second

// Status describes a connection state transition.
type Status struct {
	Connected bool
	Err       error
}

// Handlers receives pushed events and status transitions. Handlers are
// invoked from the manager's delivery goroutine, one event at a time, in
// arrival order. Nil handlers are skipped.
type Handlers struct {
	OnNotification func(n model.Notification)
	OnComment      func(taskID string, c model.Comment)
	OnStatus       func(s Status)
}

// Manager owns the event connection. It reacts to session transitions:
// the session store publishes credential changes and the application
// subscribes EnsureConnected to them.
type Manager struct {
	dialer   Dialer
	handlers Handlers
	log      *zap.Logger

	mu      sync.Mutex
	conn    Conn
	token   string // token the live or pending connection was opened with
	pending bool
	gen     int // bumped on every close; invalidates in-flight dials
}

// NewManager creates a manager that opens connections with d and
// delivers events to h.
func NewManager(d Dialer, h Handlers, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{dialer: d, handlers: h, log: log}
}

// EnsureConnected reconciles the connection with the given credential.
// It is idempotent: repeated calls with an unchanged credential do
// nothing. An unauthenticated credential closes any live connection; a
// changed token replaces the connection with a freshly authenticated one.
// Connection attempts run asynchronously; their outcome is reported via
// the OnStatus handler, not a return value.
func (m *Manager) EnsureConnected(cred model.Credential) {
	m.mu.Lock()

	if !cred.Authenticated() {
		closed := m.closeLocked()
		m.mu.Unlock()
		if closed {
			m.status(Status{Connected: false})
		}
		return
	}

	if (m.conn != nil || m.pending) && m.token == cred.Token {
		// Unchanged state; nothing to reconcile.
		m.mu.Unlock()
		return
	}

	if closed := m.closeLocked(); closed {
		m.log.Info("replacing event channel for new session token")
	}

	m.token = cred.Token
	m.pending = true
	gen := m.gen
	m.mu.Unlock()

	go m.dial(gen, cred.Token)
}

// Teardown closes any live connection and releases the handle. It is a
// no-op when no connection exists.
func (m *Manager) Teardown() {
	m.mu.Lock()
	closed := m.closeLocked()
	m.mu.Unlock()
	if closed {
		m.status(Status{Connected: false})
	}
}

// Connected reports whether a live connection is currently held.
func (m *Manager) Connected() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.conn != nil
}

// closeLocked invalidates any pending dial and closes the live
// connection, if one exists. It reports whether a connection was closed.
// Callers must hold m.mu.
func (m *Manager) closeLocked() bool {
	m.gen++
	m.pending = false
	m.token = ""
	if m.conn == nil {
		return false
	}
	c := m.conn
	m.conn = nil
	_ = c.Close()
	return true
}

// dial performs one asynchronous connection attempt. A result that
// arrives after the manager has moved on (gen mismatch) is discarded.
func (m *Manager) dial(gen int, token string) {
	ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
	defer cancel()

	c, err := m.dialer.Dial(ctx, token)

	m.mu.Lock()
	if gen != m.gen {
		m.mu.Unlock()
		if err == nil {
			_ = c.Close()
		}
		return
	}
	m.pending = false
	if err != nil {
		m.token = ""
		m.mu.Unlock()
		m.log.Warn("event channel connect failed", zap.Error(err))
		m.status(Status{Connected: false, Err: err})
		return
	}
	m.conn = c
	m.mu.Unlock()

	m.status(Status{Connected: true})
	go m.deliver(c)
}

// deliver dispatches events from c until it reports permanent closure,
// then releases the manager's handle to it.
func (m *Manager) deliver(c Conn) {
	for ev := range c.Events() {
		switch ev.Type {
		case EventNewNotification:
			n, err := ev.Notification()
			if err != nil {
				m.log.Warn("dropping bad notification event", zap.Error(err))
				continue
			}
			if m.handlers.OnNotification != nil {
				m.handlers.OnNotification(n)
			}
		case EventNewComment:
			p, err := ev.CommentEvent()
			if err != nil {
				m.log.Warn("dropping bad comment event", zap.Error(err))
				continue
			}
			if m.handlers.OnComment != nil {
				m.handlers.OnComment(p.TaskID, p.Comment)
			}
		default:
			m.log.Debug("ignoring unknown event kind", zap.String("type", ev.Type))
		}
	}

	m.mu.Lock()
	current := m.conn == c
	if current {
		m.conn = nil
		m.token = ""
	}
	m.mu.Unlock()

	if current {
		err := c.Err()
		if err != nil {
			m.log.Warn("event channel closed", zap.Error(err))
		}
		m.status(Status{Connected: false, Err: err})
	}
}

func (m *Manager) status(s Status) {
	if m.handlers.OnStatus != nil {
		m.handlers.OnStatus(s)
	}
}

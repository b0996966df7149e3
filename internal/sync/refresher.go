// Package sync periodically re-fetches the notification list in bulk, as
// a fallback path for updates missed while the event channel is down and
// as the backing for manual refresh.
package sync

import (
	"context"
	gosync "sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hamzaahmad3006/Project-Management-System-sub001/internal/api"
	"github.com/hamzaahmad3006/Project-Management-System-sub001/internal/model"
)

// RefreshState represents the current state of the refresher.
type RefreshState int

const (
	RefreshIdle RefreshState = iota
	RefreshRunning
	RefreshError
)

// RefreshResultMsg is a tea.Msg sent when a bulk fetch completes. The
// receiver feeds Notifications into the store's ReplaceAll.
type RefreshResultMsg struct {
	Notifications []model.Notification
	Err           error
}

// AuthExpiredMsg is a tea.Msg sent when a fetch fails with an
// authentication error, meaning the stored session is no longer valid.
type AuthExpiredMsg struct {
	Message string
}

// fetchTimeout is the maximum time allowed for a single bulk fetch.
const fetchTimeout = 30 * time.Second

// Refresher orchestrates background bulk fetches of notifications.
type Refresher struct {
	client   *api.Client
	interval time.Duration

	resultCh  chan tea.Msg
	triggerCh chan struct{}
	stopCh    chan struct{}

	mu       gosync.Mutex
	running  bool
	state    RefreshState
	lastSync time.Time
	err      error
}

// New creates a Refresher fetching through client every interval.
func New(client *api.Client, interval time.Duration) *Refresher {
	if interval <= 0 {
		interval = 120 * time.Second
	}
	return &Refresher{
		client:    client,
		interval:  interval,
		resultCh:  make(chan tea.Msg, 16),
		triggerCh: make(chan struct{}, 16),
		stopCh:    make(chan struct{}),
	}
}

// Start launches the polling goroutine and returns a command that
// subscribes to its results. Calling Start while running is a no-op.
func (r *Refresher) Start() tea.Cmd {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return nil
	}
	r.running = true
	r.stopCh = make(chan struct{})
	r.mu.Unlock()

	go r.loop(r.stopCh)

	return r.waitForResult()
}

// Stop halts the polling goroutine.
func (r *Refresher) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.running {
		return
	}

	close(r.stopCh)
	r.running = false
}

// RefreshNow triggers an immediate fetch, e.g. when the notification
// panel is opened or the user asks for a refresh.
func (r *Refresher) RefreshNow() {
	select {
	case r.triggerCh <- struct{}{}:
	default:
		// A refresh is already queued; skip to avoid blocking.
	}
}

// Status returns the refresher state, the time of the last successful
// fetch, and the last error, if any.
func (r *Refresher) Status() (RefreshState, time.Time, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state, r.lastSync, r.err
}

// loop runs periodic and on-demand fetches until stop is closed.
func (r *Refresher) loop(stop <-chan struct{}) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	// Do an initial fetch immediately.
	r.fetch()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			r.fetch()
		case <-r.triggerCh:
			r.fetch()
		}
	}
}

// fetch performs a single bulk fetch and sends the result message.
func (r *Refresher) fetch() {
	r.setStatus(RefreshRunning, nil)

	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	records, err := r.client.FetchNotifications(ctx)
	if err != nil {
		r.setStatus(RefreshError, err)

		if api.IsAuthError(err) {
			r.sendResult(AuthExpiredMsg{
				Message: api.ServerMessage(err),
			})
			return
		}

		r.sendResult(RefreshResultMsg{Err: err})
		return
	}

	r.setStatus(RefreshIdle, nil)
	r.sendResult(RefreshResultMsg{Notifications: records})
}

// setStatus updates the refresher status fields.
func (r *Refresher) setStatus(state RefreshState, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.state = state
	r.err = err
	if state == RefreshIdle && err == nil {
		r.lastSync = time.Now()
	}
}

// sendResult sends a message on the result channel without blocking.
func (r *Refresher) sendResult(msg tea.Msg) {
	select {
	case r.resultCh <- msg:
	default:
		// Drop if the channel is full to avoid blocking the loop.
	}
}

// waitForResult returns a command that waits for the next result.
func (r *Refresher) waitForResult() tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-r.resultCh
		if !ok {
			return nil
		}
		return msg
	}
}

// WaitForNextResult returns a command that waits for the next fetch
// result. Call it after processing a result message to keep listening.
func (r *Refresher) WaitForNextResult() tea.Cmd {
	return r.waitForResult()
}

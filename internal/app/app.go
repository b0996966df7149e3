// Package app wires the session, event channel, notification store, and
// invitation workflow together behind a minimal terminal status surface.
// The full dashboard views live elsewhere; this shell only exposes the
// realtime core.
package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/hamzaahmad3006/Project-Management-System-sub001/internal/api"
	"github.com/hamzaahmad3006/Project-Management-System-sub001/internal/comments"
	"github.com/hamzaahmad3006/Project-Management-System-sub001/internal/invite"
	"github.com/hamzaahmad3006/Project-Management-System-sub001/internal/keys"
	"github.com/hamzaahmad3006/Project-Management-System-sub001/internal/model"
	"github.com/hamzaahmad3006/Project-Management-System-sub001/internal/notify"
	"github.com/hamzaahmad3006/Project-Management-System-sub001/internal/realtime"
	"github.com/hamzaahmad3006/Project-Management-System-sub001/internal/session"
	appsync "github.com/hamzaahmad3006/Project-Management-System-sub001/internal/sync"
	"github.com/hamzaahmad3006/Project-Management-System-sub001/internal/theme"
)

// maxVisibleNotifications caps the status surface's notification list.
const maxVisibleNotifications = 10

// notificationPushedMsg carries a pushed notification into the update loop.
type notificationPushedMsg struct {
	Notification model.Notification
}

// commentPushedMsg carries a pushed comment into the update loop.
type commentPushedMsg struct {
	TaskID  string
	Comment model.Comment
}

// channelStatusMsg carries an event channel state transition.
type channelStatusMsg struct {
	Status realtime.Status
}

// Model is the root Bubble Tea model. All state mutation happens inside
// Update; background goroutines only hand messages to it.
type Model struct {
	cfg *model.AppConfig
	log *zap.Logger

	sess      *session.Store
	client    *api.Client
	store     *notify.Store
	manager   *realtime.Manager
	refresher *appsync.Refresher
	workflow  *invite.Workflow
	detail    *TaskDetail
	relay     *comments.Relay

	keys *keys.KeyMap
	spin spinner.Model

	// events receives messages produced by the channel manager's
	// delivery goroutine.
	events chan tea.Msg

	connected bool
	connErr   error
	notice    string
	noticeErr bool

	width  int
	height int
	ready  bool
}

// New builds the application. The session store must be supplied by the
// caller, which installs the initial token after wiring completes so the
// channel manager observes the restored session.
func New(cfg *model.AppConfig, sess *session.Store, log *zap.Logger) Model {
	if log == nil {
		log = zap.NewNop()
	}

	client := api.NewClient(cfg.Server.BaseURL, func() string {
		return sess.Credential().Token
	})

	detail := NewTaskDetail()
	relay := comments.NewRelay(detail)
	events := make(chan tea.Msg, 64)

	push := func(msg tea.Msg) {
		select {
		case events <- msg:
		default:
			log.Warn("dropping realtime message, queue full")
		}
	}

	manager := realtime.NewManager(
		&realtime.WebsocketDialer{URL: cfg.Server.EventsURL, Log: log},
		realtime.Handlers{
			OnNotification: func(n model.Notification) {
				push(notificationPushedMsg{Notification: n})
			},
			OnComment: func(taskID string, c model.Comment) {
				push(commentPushedMsg{TaskID: taskID, Comment: c})
			},
			OnStatus: func(s realtime.Status) {
				push(channelStatusMsg{Status: s})
			},
		},
		log,
	)

	// The channel lifecycle follows the session: every credential
	// change is published to the manager, which reconciles.
	sess.Subscribe(manager.EnsureConnected)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		cfg:       cfg,
		log:       log,
		sess:      sess,
		client:    client,
		store:     notify.NewStore(),
		manager:   manager,
		refresher: appsync.New(client, time.Duration(cfg.Sync.RefreshIntervalSec)*time.Second),
		workflow:  invite.New(),
		detail:    detail,
		relay:     relay,
		keys:      keys.DefaultKeyMap(),
		spin:      sp,
		events:    events,
	}
}

// Init starts the background refresher and subscribes to realtime events.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.waitForEvent()}
	if m.sess.Authenticated() {
		cmds = append(cmds, m.refresher.Start())
	}
	return tea.Batch(cmds...)
}

// waitForEvent returns a command that blocks for the next message from
// the channel manager's delivery goroutine.
func (m Model) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		return <-m.events
	}
}

// Update handles messages and applies all state transitions.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case spinner.TickMsg:
		if m.workflow.State() != invite.StateSubmitting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case notificationPushedMsg:
		if m.store.InsertPushed(msg.Notification) {
			m.log.Info("notification pushed",
				zap.String("id", msg.Notification.ID),
				zap.String("type", string(msg.Notification.Type)))
		}
		return m, m.waitForEvent()

	case commentPushedMsg:
		m.relay.OnComment(msg.TaskID, msg.Comment)
		return m, m.waitForEvent()

	case channelStatusMsg:
		m.connected = msg.Status.Connected
		m.connErr = msg.Status.Err
		return m, m.waitForEvent()

	case notify.FetchedMsg:
		if msg.Err != nil {
			m.setNotice(remoteFailureText(msg.Err), true)
			return m, nil
		}
		m.store.ReplaceAll(msg.Notifications)
		return m, nil

	case appsync.RefreshResultMsg:
		if msg.Err == nil {
			m.store.ReplaceAll(msg.Notifications)
		}
		return m, m.refresher.WaitForNextResult()

	case appsync.AuthExpiredMsg:
		// The stored token no longer works; drop the session, which
		// also tears the event channel down.
		m.sess.Clear()
		m.refresher.Stop()
		text := msg.Message
		if text == "" {
			text = "Session expired. Please log in again."
		}
		m.setNotice(text, true)
		return m, nil

	case invite.ResultMsg:
		if m.workflow.Finish(msg) {
			// The invitation action itself succeeded; the follow-up
			// mark-read is optimistic locally and confirmed remotely
			// on its own, without affecting this outcome.
			m.store.MarkRead(msg.NotificationID)
			m.setNotice(m.workflow.Message(), false)
			return m, notify.MarkRead(m.client, msg.NotificationID)
		}
		m.setNotice(m.workflow.Message(), true)
		return m, nil

	case notify.MarkReadResultMsg:
		if msg.Err != nil {
			// Local read state stays; the server copy may disagree.
			m.log.Warn("mark-read not confirmed by server",
				zap.String("id", msg.ID), zap.Error(msg.Err))
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// handleKey applies the global keybindings.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.manager.Teardown()
		m.refresher.Stop()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Refresh):
		if !m.sess.Authenticated() {
			return m, nil
		}
		return m, notify.Fetch(m.client)

	case key.Matches(msg, m.keys.MarkAllRead):
		ids := m.store.MarkAllRead()
		return m, notify.MarkAllRead(m.client, ids)

	case key.Matches(msg, m.keys.Accept):
		return m.respondToInvitation(api.InvitationAccept)

	case key.Matches(msg, m.keys.Decline):
		return m.respondToInvitation(api.InvitationDecline)

	case key.Matches(msg, m.keys.Logout):
		m.refresher.Stop()
		m.sess.Clear()
		m.setNotice("Logged out.", false)
		return m, nil
	}

	return m, nil
}

// respondToInvitation starts the workflow for the newest unread team
// invitation, if there is one.
func (m Model) respondToInvitation(action api.InvitationAction) (tea.Model, tea.Cmd) {
	inv, ok := m.store.FirstUnread(model.NotificationTypeInvitation)
	if !ok || inv.Data == nil || inv.Data.InvitationToken == "" {
		m.setNotice("No pending invitation.", false)
		return m, nil
	}

	cmd := m.workflow.Start(m.client, inv.Data.InvitationToken, inv.ID, action)
	if cmd == nil {
		// A response is already in flight.
		return m, nil
	}
	m.notice = ""
	return m, tea.Batch(cmd, m.spin.Tick)
}

func (m *Model) setNotice(text string, isErr bool) {
	m.notice = text
	m.noticeErr = isErr
}

// remoteFailureText renders a remote error as a user-visible notice,
// preferring the server-provided reason.
func remoteFailureText(err error) string {
	if msg := api.ServerMessage(err); msg != "" {
		return msg
	}
	return "Something went wrong. Please try again."
}

// View renders the status surface: header, notification list, and a
// status bar with the latest notice or key hints.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	title := "Project Dashboard"
	if unread := m.store.UnreadCount(); unread > 0 {
		title = fmt.Sprintf("Project Dashboard [%d unread]", unread)
	}
	header := theme.HeaderStyle.Render(title) + "  " + m.connStatus()

	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n\n")

	records := m.store.All()
	if len(records) == 0 {
		b.WriteString(theme.DimmedStyle.Render("No notifications."))
		b.WriteString("\n")
	}
	for i, n := range records {
		if i == maxVisibleNotifications {
			b.WriteString(theme.DimmedStyle.Render(
				fmt.Sprintf("… and %d more", len(records)-i)))
			b.WriteString("\n")
			break
		}
		line := fmt.Sprintf("• %s — %s", n.Title, n.Message)
		if n.Read {
			b.WriteString(theme.DimmedStyle.Render(line))
		} else {
			b.WriteString(theme.UnreadStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.statusBar())
	return b.String()
}

// connStatus renders the current event channel state.
func (m Model) connStatus() string {
	if !m.sess.Authenticated() {
		return theme.DimmedStyle.Render("logged out")
	}
	if m.connected {
		return theme.ConnStyle(true).Render("live")
	}
	return theme.ConnStyle(false).Render("offline")
}

// statusBar renders the bottom line: pending state, notice, or hints.
func (m Model) statusBar() string {
	if m.workflow.State() == invite.StateSubmitting {
		return theme.StatusBarStyle.Render(m.spin.View() + " sending response…")
	}
	if m.notice != "" {
		if m.noticeErr {
			return theme.StatusBarStyle.Render(theme.ErrorStyle.Render(m.notice))
		}
		return theme.StatusBarStyle.Render(theme.NoticeStyle.Render(m.notice))
	}
	return theme.StatusBarStyle.Render(
		"q quit | r refresh | m mark all read | a accept | d decline | L log out")
}

package app

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hamzaahmad3006/Project-Management-System-sub001/internal/api"
	"github.com/hamzaahmad3006/Project-Management-System-sub001/internal/invite"
	"github.com/hamzaahmad3006/Project-Management-System-sub001/internal/model"
	"github.com/hamzaahmad3006/Project-Management-System-sub001/internal/session"
)

func testModel() Model {
	cfg := &model.AppConfig{
		Server: model.ServerConfig{
			BaseURL:   "http://127.0.0.1:1",
			EventsURL: "ws://127.0.0.1:1",
		},
		Sync: model.SyncConfig{RefreshIntervalSec: 120},
	}
	return New(cfg, session.NewStore(nil), nil)
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	next, ok := updated.(Model)
	if !ok {
		t.Fatalf("Update returned %T", updated)
	}
	return next, cmd
}

func TestPushedNotificationEntersStore(t *testing.T) {
	m := testModel()

	m, _ = update(t, m, notificationPushedMsg{
		Notification: model.Notification{ID: "n1", Title: "Hello"},
	})
	if got := m.store.UnreadCount(); got != 1 {
		t.Fatalf("unread = %d, want 1", got)
	}

	// The same push delivered again is deduplicated.
	m, _ = update(t, m, notificationPushedMsg{
		Notification: model.Notification{ID: "n1", Title: "Hello"},
	})
	if got := m.store.Len(); got != 1 {
		t.Fatalf("store len = %d, want 1", got)
	}
}

func TestPushedCommentReachesOpenDetailOnly(t *testing.T) {
	m := testModel()
	m.detail.Open("task-9", nil)

	m, _ = update(t, m, commentPushedMsg{
		TaskID:  "task-7",
		Comment: model.Comment{ID: "c1"},
	})
	if got := len(m.detail.Comments()); got != 0 {
		t.Fatalf("thread for task-9 gained %d comments", got)
	}

	m.detail.Open("task-7", nil)
	m, _ = update(t, m, commentPushedMsg{
		TaskID:  "task-7",
		Comment: model.Comment{ID: "c1"},
	})
	if got := len(m.detail.Comments()); got != 1 {
		t.Fatalf("expected the comment to land, thread has %d", got)
	}
}

func TestInvitationSuccessMarksNotificationRead(t *testing.T) {
	m := testModel()
	m.store.ReplaceAll([]model.Notification{{
		ID:   "n1",
		Type: model.NotificationTypeInvitation,
		Data: &model.NotificationData{InvitationToken: "inv-1"},
	}})

	// Fix the workflow in its submitting state; the remote call itself
	// is not executed here.
	_ = m.workflow.Start(m.client, "inv-1", "n1", api.InvitationAccept)

	m, cmd := update(t, m, invite.ResultMsg{
		NotificationID: "n1",
		Action:         api.InvitationAccept,
		Message:        "You joined Team Alpha",
	})

	n, _ := m.store.Get("n1")
	if !n.Read {
		t.Fatal("expected the source notification to be marked read")
	}
	if cmd == nil {
		t.Fatal("expected a follow-up remote mark-read command")
	}
	if m.notice != "You joined Team Alpha" {
		t.Fatalf("notice = %q", m.notice)
	}
}

func TestInvitationFailureLeavesReadFlag(t *testing.T) {
	m := testModel()
	m.store.ReplaceAll([]model.Notification{{
		ID:   "n1",
		Type: model.NotificationTypeInvitation,
		Data: &model.NotificationData{InvitationToken: "inv-1"},
	}})
	_ = m.workflow.Start(m.client, "inv-1", "n1", api.InvitationAccept)

	m, _ = update(t, m, invite.ResultMsg{
		NotificationID: "n1",
		Action:         api.InvitationAccept,
		Err:            &api.APIError{StatusCode: 409, Message: "Invitation already used"},
	})

	n, _ := m.store.Get("n1")
	if n.Read {
		t.Fatal("read flag must stay unchanged on failure")
	}
	if m.notice != "Invitation already used" {
		t.Fatalf("notice = %q", m.notice)
	}
}

func TestViewShowsUnreadCount(t *testing.T) {
	m := testModel()
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	m, _ = update(t, m, notificationPushedMsg{
		Notification: model.Notification{ID: "n1", Title: "Hi", Message: "there"},
	})

	if view := m.View(); !strings.Contains(view, "[1 unread]") {
		t.Fatalf("view missing unread badge:\n%s", view)
	}
}

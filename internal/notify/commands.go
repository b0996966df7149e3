package notify

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hamzaahmad3006/Project-Management-System-sub001/internal/api"
	"github.com/hamzaahmad3006/Project-Management-System-sub001/internal/model"
)

// FetchedMsg is a tea.Msg carrying the result of a bulk fetch.
type FetchedMsg struct {
	Notifications []model.Notification
	Err           error
}

// MarkReadResultMsg is a tea.Msg carrying the outcome of one remote
// mark-read call. The local flag stays set either way; a failure only
// surfaces a notice.
type MarkReadResultMsg struct {
	ID  string
	Err error
}

// Fetch returns a command that bulk-fetches all notifications.
func Fetch(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		records, err := client.FetchNotifications(context.Background())
		return FetchedMsg{Notifications: records, Err: err}
	}
}

// MarkRead returns a command that confirms a single read mark with the
// server. The caller is expected to have already set the local flag.
func MarkRead(client *api.Client, id string) tea.Cmd {
	return func() tea.Msg {
		_, err := client.MarkNotificationRead(context.Background(), id)
		return MarkReadResultMsg{ID: id, Err: err}
	}
}

// MarkAllRead returns one independent mark-read command per ID. The
// commands run unordered and their outcomes are not aggregated; a
// failure of one does not block the others.
func MarkAllRead(client *api.Client, ids []string) tea.Cmd {
	if len(ids) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(ids))
	for _, id := range ids {
		cmds = append(cmds, MarkRead(client, id))
	}
	return tea.Batch(cmds...)
}

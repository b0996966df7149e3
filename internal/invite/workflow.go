// Package invite drives the accept/decline action for a team invitation
// notification: a remote state change composed with a local notification
// update.
package invite

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hamzaahmad3006/Project-Management-System-sub001/internal/api"
)

// State is the lifecycle of a single invitation action.
type State int

const (
	StateIdle State = iota
	StateSubmitting
	StateSucceeded
	StateFailed
)

// genericFailureMessage is shown when the server gives no reason.
const genericFailureMessage = "Something went wrong. Please try again."

// ResultMsg is a tea.Msg carrying the outcome of the remote
// accept/decline call.
type ResultMsg struct {
	NotificationID string
	Action         api.InvitationAction
	Message        string
	Err            error
}

// Workflow is the short-lived state machine for one invitation response.
// Each user press starts a fresh idle → submitting transition; terminal
// states are never retried automatically.
type Workflow struct {
	state          State
	token          string
	action         api.InvitationAction
	notificationID string
	message        string
}

// New returns an idle workflow.
func New() *Workflow {
	return &Workflow{state: StateIdle}
}

// State returns the current state.
func (w *Workflow) State() State {
	return w.state
}

// Message returns the user-visible outcome of the last terminal
// transition, or empty while idle/submitting.
func (w *Workflow) Message() string {
	return w.message
}

// NotificationID returns the notification the current action targets.
func (w *Workflow) NotificationID() string {
	return w.notificationID
}

// Start fixes the invitation token and action kind, transitions to
// submitting, and returns the command issuing the single remote call.
// A press while a call is already in flight is ignored; the remote side
// enforces single-use tokens for presses that race ahead of the UI.
func (w *Workflow) Start(
	client *api.Client,
	token string,
	notificationID string,
	action api.InvitationAction,
) tea.Cmd {
	if w.state == StateSubmitting {
		return nil
	}

	w.state = StateSubmitting
	w.token = token
	w.action = action
	w.notificationID = notificationID
	w.message = ""

	return func() tea.Msg {
		msg, err := client.RespondToInvitation(context.Background(), token, action)
		return ResultMsg{
			NotificationID: notificationID,
			Action:         action,
			Message:        msg,
			Err:            err,
		}
	}
}

// Finish applies the remote outcome: submitting → succeeded on success,
// submitting → failed otherwise. On failure the message is the
// server-provided reason when there is one, else a generic fallback.
// It reports whether the action succeeded; on success the caller marks
// the source notification read and surfaces the message. A failure of
// that follow-up mark-read does not demote the success.
func (w *Workflow) Finish(msg ResultMsg) bool {
	// A result with no submission in flight, or one from a superseded
	// submission, is stale and changes nothing.
	if w.state != StateSubmitting || msg.NotificationID != w.notificationID {
		return false
	}

	if msg.Err != nil {
		w.state = StateFailed
		w.message = api.ServerMessage(msg.Err)
		if w.message == "" {
			w.message = genericFailureMessage
		}
		return false
	}

	w.state = StateSucceeded
	w.message = msg.Message
	if w.message == "" {
		if msg.Action == api.InvitationAccept {
			w.message = "Invitation accepted."
		} else {
			w.message = "Invitation declined."
		}
	}
	return true
}

// Package comments routes pushed comment events to the task detail view
// that is currently open, and silently drops the rest.
package comments

import (
	"github.com/hamzaahmad3006/Project-Management-System-sub001/internal/model"
)

// TaskView is the open task detail, an external collaborator. The relay
// is its single writer for pushed comments.
type TaskView interface {
	// CurrentTaskID returns the ID of the task open in the detail
	// view, or empty when no detail is open.
	CurrentTaskID() string

	// Comments returns the comments currently shown.
	Comments() []model.Comment

	// AppendComment adds a comment to the open detail's thread.
	AppendComment(c model.Comment)
}

// Relay delivers pushed comments to a TaskView.
type Relay struct {
	view TaskView
}

// NewRelay creates a relay targeting view.
func NewRelay(view TaskView) *Relay {
	return &Relay{view: view}
}

// OnComment appends c to the open detail when taskID matches it. A
// comment already present there, e.g. from the author's own optimistic
// insert, is not duplicated. Events for any other task are discarded
// with no buffering. Reports whether the comment was delivered.
func (r *Relay) OnComment(taskID string, c model.Comment) bool {
	open := r.view.CurrentTaskID()
	if open == "" || open != taskID {
		return false
	}

	for _, existing := range r.view.Comments() {
		if existing.ID == c.ID {
			return false
		}
	}

	r.view.AppendComment(c)
	return true
}

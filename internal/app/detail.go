package app

import (
	"github.com/hamzaahmad3006/Project-Management-System-sub001/internal/model"
)

// TaskDetail holds the state of the currently open task detail view. It
// satisfies the comment relay's collaborator contract; the relay is the
// only writer of pushed comments into the thread.
type TaskDetail struct {
	taskID   string
	comments []model.Comment
}

// NewTaskDetail returns a detail with no task open.
func NewTaskDetail() *TaskDetail {
	return &TaskDetail{}
}

// Open switches the detail to taskID and installs its fetched thread.
func (d *TaskDetail) Open(taskID string, comments []model.Comment) {
	d.taskID = taskID
	d.comments = comments
}

// Close leaves the detail view; pushed comments for the task are dropped
// from then on.
func (d *TaskDetail) Close() {
	d.taskID = ""
	d.comments = nil
}

// CurrentTaskID returns the open task's ID, or empty when closed.
func (d *TaskDetail) CurrentTaskID() string {
	return d.taskID
}

// Comments returns the comments currently shown.
func (d *TaskDetail) Comments() []model.Comment {
	return d.comments
}

// AppendComment adds a comment to the open thread.
func (d *TaskDetail) AppendComment(c model.Comment) {
	d.comments = append(d.comments, c)
}

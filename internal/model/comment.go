package model

import "time"

// Comment represents a single comment on a task.
type Comment struct {
	// ID is the unique identifier for this comment.
	ID string `json:"id"`

	// TaskID is the task the comment belongs to.
	TaskID string `json:"task_id"`

	// Author is the display name of the comment author.
	Author string `json:"author"`

	// Body is the comment text.
	Body string `json:"body"`

	// AvatarURL is the author's avatar, if any.
	AvatarURL string `json:"avatar_url,omitempty"`

	// CreatedAt is when the comment was posted.
	CreatedAt time.Time `json:"created_at"`
}

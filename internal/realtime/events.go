package realtime

import (
	"encoding/json"
	"fmt"

	"github.com/hamzaahmad3006/Project-Management-System-sub001/internal/model"
)

// Server-originated event kinds delivered over the channel.
const (
	EventNewNotification = "new_notification"
	EventNewComment      = "new_comment"
)

// Event is the envelope for every server push.
type Event struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// CommentPayload is the body of a new_comment event.
type CommentPayload struct {
	TaskID  string        `json:"task_id"`
	Comment model.Comment `json:"comment"`
}

// Notification decodes the payload of a new_notification event.
func (e Event) Notification() (model.Notification, error) {
	var n model.Notification
	if err := json.Unmarshal(e.Data, &n); err != nil {
		return model.Notification{}, fmt.Errorf("decoding %s payload: %w", e.Type, err)
	}
	return n, nil
}

// CommentEvent decodes the payload of a new_comment event.
func (e Event) CommentEvent() (CommentPayload, error) {
	var p CommentPayload
	if err := json.Unmarshal(e.Data, &p); err != nil {
		return CommentPayload{}, fmt.Errorf("decoding %s payload: %w", e.Type, err)
	}
	return p, nil
}

package model

import "time"

// NotificationType identifies the kind of event a notification describes.
type NotificationType string

const (
	// NotificationTypeUpdate is a generic project or task update.
	NotificationTypeUpdate NotificationType = "update"

	// NotificationTypeInvitation is a pending team invitation that the
	// user can accept or decline.
	NotificationTypeInvitation NotificationType = "team_invitation"

	// NotificationTypeComment announces a new comment on a task.
	NotificationTypeComment NotificationType = "new_comment"
)

// NotificationData holds the optional structured payload attached to a
// notification, depending on its type.
type NotificationData struct {
	// InvitationToken is the single-use token identifying a team
	// invitation. Set only for team_invitation notifications.
	InvitationToken string `json:"invitation_token,omitempty"`

	// TaskID links the notification to a task, e.g. for comment
	// notifications.
	TaskID string `json:"task_id,omitempty"`

	// SenderAvatarURL is the avatar of the user who caused the
	// notification, if any.
	SenderAvatarURL string `json:"sender_avatar_url,omitempty"`
}

// Notification represents an alert or update surfaced to the user about
// activity in their projects and teams.
type Notification struct {
	// ID is the unique identifier for this notification.
	ID string `json:"id"`

	// Type identifies what kind of event this notification describes.
	Type NotificationType `json:"type"`

	// Title is the short heading shown in the notification panel.
	Title string `json:"title"`

	// Message is the human-readable notification text.
	Message string `json:"message"`

	// Read indicates whether the user has seen this notification.
	// It only ever transitions from false to true.
	Read bool `json:"read"`

	// CreatedAt is when this notification was generated.
	CreatedAt time.Time `json:"created_at"`

	// Data carries type-specific payload fields, if any.
	Data *NotificationData `json:"data,omitempty"`
}

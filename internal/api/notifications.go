package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/hamzaahmad3006/Project-Management-System-sub001/internal/model"
)

// FetchNotifications retrieves the full list of notifications for the
// authenticated user, newest first.
func (c *Client) FetchNotifications(ctx context.Context) ([]model.Notification, error) {
	var result []model.Notification
	if err := c.Get(ctx, "/notifications", &result); err != nil {
		return nil, fmt.Errorf("fetching notifications: %w", err)
	}
	return result, nil
}

// MarkNotificationRead marks a single notification as read on the server
// and returns the updated record.
func (c *Client) MarkNotificationRead(ctx context.Context, id string) (*model.Notification, error) {
	var result model.Notification
	path := "/notifications/" + url.PathEscape(id) + "/read"
	if err := c.Put(ctx, path, nil, &result); err != nil {
		return nil, fmt.Errorf("marking notification %s read: %w", id, err)
	}
	return &result, nil
}

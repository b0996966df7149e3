package api

import (
	"context"
	"net/url"
)

// InvitationAction is the user's response to a team invitation.
type InvitationAction string

const (
	InvitationAccept  InvitationAction = "accept"
	InvitationDecline InvitationAction = "decline"
)

// invitationResponse is the server reply to an invitation action.
type invitationResponse struct {
	Message string `json:"message"`
}

// RespondToInvitation accepts or declines a team invitation identified by
// its single-use token. On success it returns the server's confirmation
// message. A replayed token yields a normal *APIError from the server.
func (c *Client) RespondToInvitation(
	ctx context.Context,
	token string,
	action InvitationAction,
) (string, error) {
	var result invitationResponse
	path := "/teams/invitation/" + url.PathEscape(token) + "/" + string(action)
	if err := c.Get(ctx, path, &result); err != nil {
		return "", err
	}
	return result.Message, nil
}

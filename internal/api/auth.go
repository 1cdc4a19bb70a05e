package api

import (
	"context"

	"github.com/nhatminh/vifin/internal/model"
)

// Login exchanges credentials for a token and identity.
func (c *Client) Login(ctx context.Context, username, password string) (*model.AuthResponse, error) {
	var resp model.AuthResponse
	creds := model.Credentials{Username: username, Password: password}
	if err := c.do(ctx, "POST", "/auth/login/", nil, creds, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register creates an account and returns the same token+user payload as
// Login.
func (c *Client) Register(ctx context.Context, reg model.Registration) (*model.AuthResponse, error) {
	var resp model.AuthResponse
	if err := c.do(ctx, "POST", "/auth/register/", nil, reg, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Profile fetches the authenticated user's identity record.
func (c *Client) Profile(ctx context.Context) (*model.User, error) {
	var user model.User
	if err := c.get(ctx, "/auth/profile/", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

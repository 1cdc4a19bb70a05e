package api

import (
	"context"

	"github.com/nhatminh/vifin/internal/model"
)

// GetPreferences fetches the server-side preference object.
func (c *Client) GetPreferences(ctx context.Context) (*model.Preferences, error) {
	var prefs model.Preferences
	if err := c.get(ctx, "/auth/preferences/", nil, &prefs); err != nil {
		return nil, err
	}
	return &prefs, nil
}

// UpdatePreferences sends a partial update; the server merges and returns
// the full resulting object.
func (c *Client) UpdatePreferences(ctx context.Context, patch model.PreferencesPatch) (*model.Preferences, error) {
	var prefs model.Preferences
	if err := c.do(ctx, "PATCH", "/auth/preferences/", nil, patch, &prefs); err != nil {
		return nil, err
	}
	return &prefs, nil
}

package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/nhatminh/vifin/internal/model"
)

// ListNotifications fetches up to limit notifications, newest first. The
// endpoint answers with either a bare array or a {results} wrapper.
func (c *Client) ListNotifications(ctx context.Context, limit int) ([]model.Notification, error) {
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	var raw json.RawMessage
	if err := c.get(ctx, "/notifications/", query, &raw); err != nil {
		return nil, err
	}

	trimmed := strings.TrimSpace(string(raw))
	if strings.HasPrefix(trimmed, "[") {
		var notifications []model.Notification
		if err := json.Unmarshal(raw, &notifications); err != nil {
			return nil, fmt.Errorf("failed to decode notifications: %w", err)
		}
		return notifications, nil
	}

	var envelope struct {
		Results []model.Notification `json:"results"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode notifications: %w", err)
	}
	return envelope.Results, nil
}

// UnreadCount fetches the number of unread notifications.
func (c *Client) UnreadCount(ctx context.Context) (int, error) {
	var resp struct {
		UnreadCount int `json:"unread_count"`
	}
	if err := c.get(ctx, "/notifications/unread_count/", nil, &resp); err != nil {
		return 0, err
	}
	return resp.UnreadCount, nil
}

// MarkNotificationRead marks one notification as read.
func (c *Client) MarkNotificationRead(ctx context.Context, id int) error {
	path := fmt.Sprintf("/notifications/%d/mark_read/", id)
	return c.do(ctx, "POST", path, nil, nil, nil)
}

// MarkAllNotificationsRead marks every notification as read.
func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	return c.do(ctx, "POST", "/notifications/mark_all_read/", nil, nil, nil)
}

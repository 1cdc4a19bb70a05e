package api

import (
	"context"

	"github.com/nhatminh/vifin/internal/model"
)

// Trends fetches the AI spending-trend analysis.
func (c *Client) Trends(ctx context.Context) (*model.TrendReport, error) {
	var report model.TrendReport
	if err := c.get(ctx, "/ai/trends/", nil, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// Predictions fetches the AI next-period spending forecast.
func (c *Client) Predictions(ctx context.Context) (*model.Prediction, error) {
	var prediction model.Prediction
	if err := c.get(ctx, "/ai/predictions/", nil, &prediction); err != nil {
		return nil, err
	}
	return &prediction, nil
}

// Anomalies fetches AI-flagged unusual transactions.
func (c *Client) Anomalies(ctx context.Context) (*model.AnomalyReport, error) {
	var report model.AnomalyReport
	if err := c.get(ctx, "/ai/anomalies/", nil, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// SavingsSuggestions fetches AI savings recommendations.
func (c *Client) SavingsSuggestions(ctx context.Context) (*model.SavingsReport, error) {
	var report model.SavingsReport
	if err := c.get(ctx, "/ai/savings-suggestions/", nil, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// Chat sends a message to the chatbot and returns its reply.
func (c *Client) Chat(ctx context.Context, message string) (string, error) {
	var resp struct {
		Response string `json:"response"`
	}
	payload := map[string]string{"message": message}
	if err := c.do(ctx, "POST", "/chatbot/", nil, payload, &resp); err != nil {
		return "", err
	}
	return resp.Response, nil
}

package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/url"
	"strconv"
	"strings"

	"github.com/nhatminh/vifin/internal/model"
)

// PageSize is the server's fixed page size for transaction lists.
const PageSize = 20

// TransactionPage is one page of the transaction list together with the
// server-reported cursor state.
type TransactionPage struct {
	Results     []model.Transaction
	Count       int
	HasNext     bool
	HasPrevious bool
}

// paginatedEnvelope mirrors the DRF pagination wrapper.
type paginatedEnvelope struct {
	Results  []model.Transaction `json:"results"`
	Count    int                 `json:"count"`
	Next     *string             `json:"next"`
	Previous *string             `json:"previous"`
}

// ListCategories fetches the full category catalog.
func (c *Client) ListCategories(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	if err := c.get(ctx, "/categories/", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// ListTransactions fetches one page of transactions. The endpoint may answer
// with a paginated envelope or, on older deployments, a bare array; a bare
// array is treated as a single full page.
func (c *Client) ListTransactions(ctx context.Context, page int) (*TransactionPage, error) {
	query := url.Values{}
	if page > 1 {
		query.Set("page", strconv.Itoa(page))
	}

	var raw json.RawMessage
	if err := c.get(ctx, "/transactions/", query, &raw); err != nil {
		return nil, err
	}

	return decodeTransactionPage(raw)
}

func decodeTransactionPage(raw json.RawMessage) (*TransactionPage, error) {
	trimmed := strings.TrimSpace(string(raw))
	if strings.HasPrefix(trimmed, "[") {
		var results []model.Transaction
		if err := json.Unmarshal(raw, &results); err != nil {
			return nil, fmt.Errorf("failed to decode transaction list: %w", err)
		}
		return &TransactionPage{Results: results, Count: len(results)}, nil
	}

	var envelope paginatedEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode transaction page: %w", err)
	}
	return &TransactionPage{
		Results:     envelope.Results,
		Count:       envelope.Count,
		HasNext:     envelope.Next != nil,
		HasPrevious: envelope.Previous != nil,
	}, nil
}

// CreateTransaction posts a new transaction.
func (c *Client) CreateTransaction(ctx context.Context, draft model.TransactionDraft) (*model.Transaction, error) {
	var tx model.Transaction
	if err := c.do(ctx, "POST", "/transactions/", nil, draft, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

// UpdateTransaction replaces the fields of an existing transaction.
func (c *Client) UpdateTransaction(ctx context.Context, id int, draft model.TransactionDraft) (*model.Transaction, error) {
	var tx model.Transaction
	path := fmt.Sprintf("/transactions/%d/", id)
	if err := c.do(ctx, "PUT", path, nil, draft, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

// DeleteTransaction removes a transaction. Deletion is immediate; there is
// no soft delete.
func (c *Client) DeleteTransaction(ctx context.Context, id int) error {
	path := fmt.Sprintf("/transactions/%d/", id)
	return c.do(ctx, "DELETE", path, nil, nil, nil)
}

// ParseNLP sends free text to the natural-language parsing endpoint, which
// either creates a transaction or answers with a structured error.
func (c *Client) ParseNLP(ctx context.Context, text string) (*model.Transaction, error) {
	var tx model.Transaction
	payload := map[string]string{"text": text}
	if err := c.do(ctx, "POST", "/transactions/nlp_input/", nil, payload, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

// QueryNLP sends a read-only natural-language question and returns the
// server's textual answer.
func (c *Client) QueryNLP(ctx context.Context, text string) (string, error) {
	var resp struct {
		Result string `json:"result"`
	}
	payload := map[string]string{"text": text}
	if err := c.do(ctx, "POST", "/transactions/nlp_query/", nil, payload, &resp); err != nil {
		return "", err
	}
	return resp.Result, nil
}

// UploadReceipt sends a receipt image as multipart form data. On an OCR
// failure the server may still include the raw recognized text, so the
// result is returned alongside the error when the body was decodable.
func (c *Client) UploadReceipt(ctx context.Context, filename string, content io.Reader) (*model.OCRResult, error) {
	var result model.OCRResult
	err := c.doMultipart(ctx, "/transactions/ocr_receipt/", func(mw *multipart.Writer) error {
		part, err := mw.CreateFormFile("image", filename)
		if err != nil {
			return err
		}
		_, err = io.Copy(part, content)
		return err
	}, &result)
	if err != nil {
		// A 400 body may carry {error, raw_text} for user inspection.
		var valErr *ValidationError
		if errors.As(err, &valErr) {
			result.Error = valErr.Error()
		}
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Body != "" {
			_ = json.Unmarshal([]byte(apiErr.Body), &result)
		}
		return &result, err
	}
	return &result, nil
}

// Statistics fetches summary, by-date, and by-category aggregates for the
// given date range. Zero dates are omitted.
func (c *Client) Statistics(ctx context.Context, start, end model.Date) (*model.Statistics, error) {
	query := url.Values{}
	if !start.IsZero() {
		query.Set("start_date", start.Format("2006-01-02"))
	}
	if !end.IsZero() {
		query.Set("end_date", end.Format("2006-01-02"))
	}

	var stats model.Statistics
	if err := c.get(ctx, "/transactions/statistics/", query, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

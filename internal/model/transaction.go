package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Amount is a currency amount. The server serializes decimal fields as
// strings ("50000.00") but some endpoints return plain numbers, so both are
// accepted on decode.
type Amount float64

// UnmarshalJSON accepts either a JSON number or a quoted decimal string.
func (a *Amount) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*a = 0
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", s, err)
	}
	*a = Amount(f)
	return nil
}

// MarshalJSON encodes the amount as a decimal string, matching what the
// server expects for writes.
func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(strconv.FormatFloat(float64(a), 'f', 2, 64))
}

// Date is a calendar date serialized as "2006-01-02".
type Date struct {
	time.Time
}

// NewDate builds a Date from year, month, day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current calendar date.
func Today() Date {
	now := time.Now()
	return NewDate(now.Year(), now.Month(), now.Day())
}

// UnmarshalJSON decodes a "2006-01-02" date string.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", s, err)
	}
	d.Time = t
	return nil
}

// MarshalJSON encodes the date as a "2006-01-02" string.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`null`), nil
	}
	return json.Marshal(d.Format("2006-01-02"))
}

// Transaction represents a single income or expense record as the server
// returns it, including the denormalized category read fields.
type Transaction struct {
	ID               int          `json:"id"`
	Category         int          `json:"category"`
	CategoryName     string       `json:"category_name,omitempty"`
	CategoryIcon     string       `json:"category_icon,omitempty"`
	CategoryColor    string       `json:"category_color,omitempty"`
	CategoryType     CategoryType `json:"category_type,omitempty"`
	Amount           Amount       `json:"amount"`
	Description      string       `json:"description"`
	TransactionDate  Date         `json:"transaction_date"`
	OriginalNLPInput string       `json:"original_nlp_input,omitempty"`
	CreatedAt        time.Time    `json:"created_at,omitempty"`
	UpdatedAt        time.Time    `json:"updated_at,omitempty"`
}

// IsIncome reports whether the transaction's category is an income category.
func (t Transaction) IsIncome() bool {
	return t.CategoryType == CategoryTypeIncome
}

// SignedAmount returns the amount with sign implied by the category type:
// positive for income, negative for expense.
func (t Transaction) SignedAmount() float64 {
	if t.IsIncome() {
		return float64(t.Amount)
	}
	return -float64(t.Amount)
}

// TransactionDraft holds the writable fields of a transaction, used for both
// create and update requests.
type TransactionDraft struct {
	Category        int    `json:"category"`
	Amount          Amount `json:"amount"`
	Description     string `json:"description,omitempty"`
	TransactionDate Date   `json:"transaction_date"`
}

// Validate enforces required-field presence only; everything else is
// server-delegated.
func (d TransactionDraft) Validate() error {
	if d.Amount <= 0 {
		return fmt.Errorf("amount is required and must be positive")
	}
	if d.Category == 0 {
		return fmt.Errorf("category is required")
	}
	if d.TransactionDate.IsZero() {
		return fmt.Errorf("transaction date is required")
	}
	return nil
}

package model

import "time"

// CategoryType indicates whether a category represents income or expense.
type CategoryType string

const (
	// CategoryTypeIncome represents categories for income transactions.
	CategoryTypeIncome CategoryType = "income"
	// CategoryTypeExpense represents categories for expense transactions.
	CategoryTypeExpense CategoryType = "expense"
)

// Category represents a transaction category. Categories are read-only from
// this client's perspective; the server owns the catalog.
type Category struct {
	ID          int          `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Icon        string       `json:"icon,omitempty"`
	Color       string       `json:"color,omitempty"`
	Type        CategoryType `json:"type"`
	CreatedAt   time.Time    `json:"created_at,omitempty"`
}

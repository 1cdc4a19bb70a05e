// Package components holds the reusable pieces of the transaction browser.
package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nhatminh/vifin/internal/model"
	"github.com/nhatminh/vifin/internal/tui/themes"
)

// TransactionList renders one page of transactions with a cursor.
type TransactionList struct {
	Items  []model.Transaction
	Cursor int
	Width  int
}

// SetItems replaces the list contents and clamps the cursor.
func (l *TransactionList) SetItems(items []model.Transaction) {
	l.Items = items
	if l.Cursor >= len(items) {
		l.Cursor = len(items) - 1
	}
	if l.Cursor < 0 {
		l.Cursor = 0
	}
}

// MoveUp moves the cursor one row up.
func (l *TransactionList) MoveUp() {
	if l.Cursor > 0 {
		l.Cursor--
	}
}

// MoveDown moves the cursor one row down.
func (l *TransactionList) MoveDown() {
	if l.Cursor < len(l.Items)-1 {
		l.Cursor++
	}
}

// Selected returns the transaction under the cursor, or nil when the list
// is empty.
func (l *TransactionList) Selected() *model.Transaction {
	if len(l.Items) == 0 || l.Cursor < 0 || l.Cursor >= len(l.Items) {
		return nil
	}
	return &l.Items[l.Cursor]
}

// View renders the list with the given theme.
func (l *TransactionList) View(theme themes.Theme) string {
	if len(l.Items) == 0 {
		return theme.Subtitle.Render("No transactions yet.")
	}

	var b strings.Builder
	for i, tx := range l.Items {
		row := l.renderRow(theme, tx)
		if i == l.Cursor {
			row = theme.Selected.Render("▸ ") + row
		} else {
			row = "  " + row
		}
		b.WriteString(row)
		b.WriteString("\n")
	}
	return b.String()
}

func (l *TransactionList) renderRow(theme themes.Theme, tx model.Transaction) string {
	icon := tx.CategoryIcon
	if icon == "" {
		icon = "💰"
	}
	category := tx.CategoryName
	if category == "" {
		category = "Khác"
	}

	amountStyle := theme.ExpenseAmount
	sign := "-"
	if tx.IsIncome() {
		amountStyle = theme.IncomeAmount
		sign = "+"
	}

	date := theme.Normal.Render(tx.TransactionDate.Format("02/01/2006"))
	name := theme.Bold.Render(fmt.Sprintf("%-20s", truncate(category, 20)))
	amount := amountStyle.Render(fmt.Sprintf("%s%.0f ₫", sign, float64(tx.Amount)))

	row := fmt.Sprintf("%s  %s %s  %s", date, icon, name, amount)
	if tx.Description != "" {
		desc := lipgloss.NewStyle().Foreground(theme.Muted).Render(truncate(tx.Description, 40))
		row += "  " + desc
	}
	return row
}

// PageControls renders the bounded page-number window.
func PageControls(theme themes.Theme, window []int, current, total, count int) string {
	var buttons []string
	for _, page := range window {
		label := fmt.Sprintf("%d", page)
		if page == current {
			buttons = append(buttons, theme.PageActive.Render(label))
		} else {
			buttons = append(buttons, theme.PageInactive.Render(label))
		}
	}

	summary := lipgloss.NewStyle().Foreground(theme.Muted).
		Render(fmt.Sprintf("  page %d/%d · %d total", current, total, count))
	return strings.Join(buttons, "") + summary
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}

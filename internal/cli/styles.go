// Package cli renders styled terminal output using the active theme, so
// command output follows the user's primary color and dark/light setting.
package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nhatminh/vifin/internal/model"
	"github.com/nhatminh/vifin/internal/tui/themes"
)

// Renderer styles command output with the applied theme.
type Renderer struct {
	applier *themes.Applier
}

// NewRenderer creates a renderer bound to a theme applier.
func NewRenderer(applier *themes.Applier) *Renderer {
	return &Renderer{applier: applier}
}

func (r *Renderer) theme() themes.Theme {
	return r.applier.Active()
}

// Title renders a section title.
func (r *Renderer) Title(text string) string {
	return r.theme().Title.Render(text)
}

// Success renders a success message.
func (r *Renderer) Success(text string) string {
	return r.theme().StatusSuccess.Render("✓ " + text)
}

// Warning renders a warning message.
func (r *Renderer) Warning(text string) string {
	return r.theme().StatusWarning.Render("! " + text)
}

// Error renders an error message.
func (r *Renderer) Error(text string) string {
	return r.theme().StatusError.Render("✗ " + text)
}

// Muted renders de-emphasized text.
func (r *Renderer) Muted(text string) string {
	return lipgloss.NewStyle().Foreground(r.theme().Muted).Render(text)
}

// Amount renders a signed currency amount, green for income and red for
// expense.
func (r *Renderer) Amount(tx model.Transaction) string {
	t := r.theme()
	formatted := formatAmount(float64(tx.Amount))
	if tx.IsIncome() {
		return t.IncomeAmount.Render("+" + formatted)
	}
	return t.ExpenseAmount.Render("-" + formatted)
}

// TransactionRow renders one transaction as a list row.
func (r *Renderer) TransactionRow(tx model.Transaction) string {
	t := r.theme()
	icon := tx.CategoryIcon
	if icon == "" {
		icon = "💰"
	}
	category := tx.CategoryName
	if category == "" {
		category = "Khác"
	}

	fields := []string{
		t.Normal.Render(tx.TransactionDate.Format("02/01/2006")),
		fmt.Sprintf("%s %s", icon, t.Bold.Render(category)),
		r.Amount(tx),
	}
	if tx.Description != "" {
		fields = append(fields, r.Muted(tx.Description))
	}
	return strings.Join(fields, "  ")
}

// PageFooter renders the page-number controls: the bounded window plus a
// position summary.
func (r *Renderer) PageFooter(window []int, current, total, count int) string {
	t := r.theme()
	var buttons []string
	for _, page := range window {
		label := fmt.Sprintf("%d", page)
		if page == current {
			buttons = append(buttons, t.PageActive.Render(label))
		} else {
			buttons = append(buttons, t.PageInactive.Render(label))
		}
	}
	summary := r.Muted(fmt.Sprintf("page %d/%d · %d transactions", current, total, count))
	return strings.Join(buttons, "") + "  " + summary
}

// formatAmount renders an amount with thousands separators, the way the
// original UI shows Vietnamese đồng.
func formatAmount(v float64) string {
	s := fmt.Sprintf("%.0f", v)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var b strings.Builder
	for i, digit := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(digit)
	}

	out := b.String() + " ₫"
	if neg {
		out = "-" + out
	}
	return out
}

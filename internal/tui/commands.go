package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const requestTimeout = 30 * time.Second

// loadPage navigates the pager and reports the resulting state.
func (m Model) loadPage(page int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		err := m.pager.GoToPage(ctx, page)
		return m.pageMsg(err)
	}
}

// refreshCurrent reloads the current page in place.
func (m Model) refreshCurrent() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		err := m.pager.RefreshCurrent(ctx)
		return m.pageMsg(err)
	}
}

// loadCategories fetches the category catalog once per session.
func (m Model) loadCategories() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		categories, err := m.svc.ListCategories(ctx)
		return categoriesLoadedMsg{categories: categories, err: err}
	}
}

// submitNLP sends the free-text buffer through the ingestion workflow. The
// workflow enforces the empty-input guard and the in-flight guard, and
// refreshes the list to page 1 on success.
func (m Model) submitNLP(text string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		m.workflow.SetText(text)
		created, err := m.workflow.SubmitText(ctx)
		return nlpSubmittedMsg{created: created, err: err}
	}
}

// deleteTransaction removes the selected transaction; the pager reconciles
// which page to show afterwards.
func (m Model) deleteTransaction(id int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		err := m.pager.Delete(ctx, id)
		return deletedMsg{id: id, err: err}
	}
}

// pageMsg snapshots the pager state after a navigation or refresh.
func (m Model) pageMsg(err error) pageLoadedMsg {
	return pageLoadedMsg{
		items:       m.pager.Items(),
		currentPage: m.pager.CurrentPage(),
		totalPages:  m.pager.TotalPages(),
		count:       m.pager.Count(),
		window:      m.pager.Window(),
		err:         err,
	}
}

// clearStatusAfter schedules the transient status line to clear.
func clearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return statusClearMsg{}
	})
}

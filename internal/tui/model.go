// Package tui implements the interactive transaction browser: a paginated
// list with free-text (NLP) entry and delete, themed from the user's
// preferences.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhatminh/vifin/internal/ingest"
	"github.com/nhatminh/vifin/internal/model"
	"github.com/nhatminh/vifin/internal/pager"
	"github.com/nhatminh/vifin/internal/service"
	"github.com/nhatminh/vifin/internal/tui/components"
	"github.com/nhatminh/vifin/internal/tui/themes"
)

// State represents what the browser is currently doing.
type State int

// Browser states.
const (
	StateLoading State = iota
	StateList
	StateEntry
	StateConfirmDelete
)

// Config wires the browser's dependencies.
type Config struct {
	Service  service.TransactionService
	Pager    *pager.Controller
	Workflow *ingest.Workflow
	Applier  *themes.Applier
	Unread   int
}

// Model is the bubbletea model for the transaction browser.
type Model struct {
	svc      service.TransactionService
	pager    *pager.Controller
	workflow *ingest.Workflow
	applier  *themes.Applier

	state       State
	list        components.TransactionList
	entry       textinput.Model
	spin        spinner.Model
	keymap      KeyMap
	categories  []model.Category
	currentPage int
	totalPages  int
	count       int
	window      []int
	unread      int
	showHelp    bool
	status      string
	statusErr   bool
	width       int
	height      int
	quitting    bool
}

// NewModel creates the browser model.
func NewModel(cfg Config) Model {
	entry := textinput.New()
	entry.Placeholder = `ví dụ: "Chi 50000 ăn sáng"`
	entry.CharLimit = 280
	entry.Width = 60

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	return Model{
		svc:      cfg.Service,
		pager:    cfg.Pager,
		workflow: cfg.Workflow,
		applier:  cfg.Applier,
		state:    StateLoading,
		entry:    entry,
		spin:     spin,
		keymap:   DefaultKeyMap(),
		unread:   cfg.Unread,
		window:   []int{1},
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		m.spin.Tick,
		m.loadPage(1),
		m.loadCategories(),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case pageLoadedMsg:
		return m.handlePageLoaded(msg)

	case categoriesLoadedMsg:
		if msg.err == nil {
			m.categories = msg.categories
		}
		return m, nil

	case nlpSubmittedMsg:
		return m.handleNLPSubmitted(msg)

	case deletedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("delete failed: %v", msg.err)
			m.statusErr = true
			m.state = StateList
			return m, clearStatusAfter(statusLifetime)
		}
		m.status = "transaction deleted"
		m.statusErr = false
		return m, m.refreshAfterMutation()

	case notificationsMsg:
		m.unread = msg.unread
		return m, nil

	case statusClearMsg:
		m.status = ""
		m.statusErr = false
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handlePageLoaded(msg pageLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.state = StateList
		m.status = fmt.Sprintf("failed to load transactions: %v", msg.err)
		m.statusErr = true
		return m, clearStatusAfter(statusLifetime)
	}

	m.list.SetItems(msg.items)
	m.currentPage = msg.currentPage
	m.totalPages = msg.totalPages
	m.count = msg.count
	m.window = msg.window
	if m.state == StateLoading || m.state == StateConfirmDelete {
		m.state = StateList
	}
	return m, nil
}

func (m Model) handleNLPSubmitted(msg nlpSubmittedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		// The input is preserved in the entry field so the user can retry
		// without retyping.
		m.status = msg.err.Error()
		m.statusErr = true
		m.state = StateEntry
		return m, clearStatusAfter(statusLifetime)
	}

	m.entry.SetValue("")
	m.entry.Blur()
	m.state = StateLoading
	m.status = "transaction created"
	m.statusErr = false
	// The workflow already refreshed the pager to page 1; snapshot it.
	return m, tea.Batch(
		func() tea.Msg { return m.pageMsg(nil) },
		clearStatusAfter(statusLifetime),
	)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.state == StateEntry {
		switch msg.String() {
		case "esc":
			m.state = StateList
			m.entry.Blur()
			return m, nil
		case "enter":
			text := strings.TrimSpace(m.entry.Value())
			return m, m.submitNLP(text)
		default:
			var cmd tea.Cmd
			m.entry, cmd = m.entry.Update(msg)
			return m, cmd
		}
	}

	if m.state == StateConfirmDelete {
		switch msg.String() {
		case "y", "Y":
			if selected := m.list.Selected(); selected != nil {
				return m, m.deleteTransaction(selected.ID)
			}
			m.state = StateList
			return m, nil
		default:
			m.state = StateList
			return m, nil
		}
	}

	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keymap.Up):
		m.list.MoveUp()
	case key.Matches(msg, m.keymap.Down):
		m.list.MoveDown()
	case key.Matches(msg, m.keymap.NextPage):
		return m, m.loadPage(m.currentPage + 1)
	case key.Matches(msg, m.keymap.PrevPage):
		return m, m.loadPage(m.currentPage - 1)
	case key.Matches(msg, m.keymap.Refresh):
		return m, m.refreshCurrent()
	case key.Matches(msg, m.keymap.NLPEntry):
		m.state = StateEntry
		m.entry.Focus()
		return m, textinput.Blink
	case key.Matches(msg, m.keymap.Delete):
		if m.list.Selected() != nil {
			m.state = StateConfirmDelete
		}
	case key.Matches(msg, m.keymap.Help):
		m.showHelp = !m.showHelp
	}
	return m, nil
}

// refreshAfterMutation re-snapshots the pager after it reconciled a delete.
func (m Model) refreshAfterMutation() tea.Cmd {
	return tea.Batch(
		func() tea.Msg { return m.pageMsg(nil) },
		clearStatusAfter(statusLifetime),
	)
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	theme := m.applier.Active()
	var b strings.Builder

	title := "Giao dịch"
	if m.unread > 0 {
		title += fmt.Sprintf("  🔔 %d", m.unread)
	}
	b.WriteString(theme.Title.Render(title))
	b.WriteString("\n")

	switch m.state {
	case StateLoading:
		b.WriteString(m.spin.View() + " loading…\n")
	case StateEntry:
		b.WriteString(theme.Subtitle.Render("Describe the transaction (enter to submit, esc to cancel):"))
		b.WriteString("\n")
		b.WriteString(m.entry.View())
		b.WriteString("\n")
	case StateConfirmDelete:
		if selected := m.list.Selected(); selected != nil {
			prompt := fmt.Sprintf("Delete %q on %s? (y/N)",
				selected.Description, selected.TransactionDate.Format("02/01/2006"))
			b.WriteString(theme.StatusWarning.Render(prompt))
			b.WriteString("\n")
		}
		b.WriteString(m.list.View(theme))
	default:
		b.WriteString(m.list.View(theme))
		b.WriteString("\n")
		b.WriteString(components.PageControls(theme, m.window, m.currentPage, m.totalPages, m.count))
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString("\n")
		if m.statusErr {
			b.WriteString(theme.StatusError.Render(m.status))
		} else {
			b.WriteString(theme.StatusSuccess.Render(m.status))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.showHelp {
		b.WriteString(m.helpView(theme))
	} else {
		b.WriteString(theme.Subtitle.Render("↑/↓ move · ←/→ pages · i add · d delete · ? help · q quit"))
	}
	return b.String()
}

// helpView lists every binding with its description, one per line.
func (m Model) helpView(theme themes.Theme) string {
	bindings := []key.Binding{
		m.keymap.Up, m.keymap.Down,
		m.keymap.PrevPage, m.keymap.NextPage,
		m.keymap.NLPEntry, m.keymap.Delete, m.keymap.Refresh,
		m.keymap.Help, m.keymap.Quit,
	}

	var lines []string
	for _, binding := range bindings {
		h := binding.Help()
		lines = append(lines, fmt.Sprintf("%-6s %s", h.Key, h.Desc))
	}
	return theme.Subtitle.Render(strings.Join(lines, "\n"))
}

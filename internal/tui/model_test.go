package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhatminh/vifin/internal/api"
	"github.com/nhatminh/vifin/internal/ingest"
	"github.com/nhatminh/vifin/internal/model"
	"github.com/nhatminh/vifin/internal/pager"
	"github.com/nhatminh/vifin/internal/service"
	"github.com/nhatminh/vifin/internal/tui/themes"
)

func testConfig(svc *service.MockTransactionService) Config {
	list := pager.NewController(svc)
	applier := &themes.Applier{DarkSignal: func() bool { return false }}
	applier.Apply(model.DefaultPreferences())

	return Config{
		Service:  svc,
		Pager:    list,
		Workflow: ingest.NewWorkflow(svc, list, nil, nil),
		Applier:  applier,
	}
}

func pagedService(total int) *service.MockTransactionService {
	svc := &service.MockTransactionService{}
	svc.ListTransactionsFn = func(_ context.Context, page int) (*api.TransactionPage, error) {
		start := (page - 1) * api.PageSize
		end := start + api.PageSize
		if end > total {
			end = total
		}
		var items []model.Transaction
		for id := start + 1; id <= end; id++ {
			items = append(items, model.Transaction{ID: id, Description: "x"})
		}
		return &api.TransactionPage{Results: items, Count: total}, nil
	}
	return svc
}

func TestModelStartsLoading(t *testing.T) {
	m := NewModel(testConfig(pagedService(5)))
	assert.Equal(t, StateLoading, m.state)
	assert.NotNil(t, m.Init())
}

func TestPageLoadedEntersListState(t *testing.T) {
	svc := pagedService(45)
	cfg := testConfig(svc)
	m := NewModel(cfg)

	require.NoError(t, cfg.Pager.Load(context.Background(), 1))
	updated, _ := m.Update(m.pageMsg(nil))
	m = updated.(Model)

	assert.Equal(t, StateList, m.state)
	assert.Equal(t, 1, m.currentPage)
	assert.Equal(t, 3, m.totalPages)
	assert.Len(t, m.list.Items, api.PageSize)
}

func TestPageLoadFailureShowsStatus(t *testing.T) {
	m := NewModel(testConfig(pagedService(0)))

	updated, _ := m.Update(pageLoadedMsg{err: assert.AnError})
	m = updated.(Model)

	assert.Equal(t, StateList, m.state)
	assert.True(t, m.statusErr)
	assert.Contains(t, m.status, "failed to load")
}

func TestEntryKeyOpensInput(t *testing.T) {
	cfg := testConfig(pagedService(5))
	m := NewModel(cfg)
	require.NoError(t, cfg.Pager.Load(context.Background(), 1))
	updated, _ := m.Update(m.pageMsg(nil))
	m = updated.(Model)

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'i'}})
	m = updated.(Model)
	assert.Equal(t, StateEntry, m.state)

	// Escape returns to the list without submitting.
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(Model)
	assert.Equal(t, StateList, m.state)
	assert.Empty(t, cfg.Workflow.Text())
}

func TestNLPFailureKeepsEntryValue(t *testing.T) {
	m := NewModel(testConfig(pagedService(5)))
	m.state = StateEntry
	m.entry.SetValue("gibberish")

	updated, _ := m.Update(nlpSubmittedMsg{err: assert.AnError})
	m = updated.(Model)

	assert.Equal(t, StateEntry, m.state)
	assert.Equal(t, "gibberish", m.entry.Value())
	assert.True(t, m.statusErr)
}

func TestNLPSuccessClearsEntry(t *testing.T) {
	m := NewModel(testConfig(pagedService(5)))
	m.state = StateEntry
	m.entry.SetValue("Chi 50000 ăn sáng")

	updated, cmd := m.Update(nlpSubmittedMsg{created: &model.Transaction{ID: 1}})
	m = updated.(Model)

	assert.Empty(t, m.entry.Value())
	assert.Equal(t, StateLoading, m.state)
	assert.False(t, m.statusErr)
	assert.NotNil(t, cmd)
}

func TestNotificationBadgeUpdates(t *testing.T) {
	m := NewModel(testConfig(pagedService(5)))

	updated, _ := m.Update(notificationsMsg{unread: 4})
	m = updated.(Model)
	assert.Equal(t, 4, m.unread)
	assert.Contains(t, m.View(), "4")
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	cfg := testConfig(pagedService(5))
	m := NewModel(cfg)
	require.NoError(t, cfg.Pager.Load(context.Background(), 1))
	updated, _ := m.Update(m.pageMsg(nil))
	m = updated.(Model)

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})
	m = updated.(Model)
	assert.Equal(t, StateConfirmDelete, m.state)

	// Anything but y aborts.
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	m = updated.(Model)
	assert.Equal(t, StateList, m.state)
}

func TestHelpKeyTogglesFullBindingList(t *testing.T) {
	cfg := testConfig(pagedService(5))
	m := NewModel(cfg)
	require.NoError(t, cfg.Pager.Load(context.Background(), 1))
	updated, _ := m.Update(m.pageMsg(nil))
	m = updated.(Model)

	assert.NotContains(t, m.View(), "previous page")

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	m = updated.(Model)
	assert.True(t, m.showHelp)
	assert.Contains(t, m.View(), "previous page")
	assert.Contains(t, m.View(), "add by sentence")

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	m = updated.(Model)
	assert.False(t, m.showHelp)
	assert.NotContains(t, m.View(), "previous page")
}

func TestQuitKey(t *testing.T) {
	cfg := testConfig(pagedService(5))
	m := NewModel(cfg)
	require.NoError(t, cfg.Pager.Load(context.Background(), 1))
	updated, _ := m.Update(m.pageMsg(nil))
	m = updated.(Model)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	m = updated.(Model)
	assert.True(t, m.quitting)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

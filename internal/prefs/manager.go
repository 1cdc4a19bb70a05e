// Package prefs manages the per-session preference object and propagates
// visual settings through a ThemePort whenever the active object changes.
package prefs

import (
	"context"
	"log/slog"
	"sync"

	"github.com/nhatminh/vifin/internal/model"
	"github.com/nhatminh/vifin/internal/service"
)

// ThemePort applies the visual side effects of a preference object to
// whatever surface is hosting the UI. Implementations must be idempotent:
// applying the same object twice yields the same visual state.
type ThemePort interface {
	Apply(prefs model.Preferences)
}

// NopTheme is a ThemePort that does nothing, for headless contexts.
type NopTheme struct{}

// Apply implements ThemePort.
func (NopTheme) Apply(model.Preferences) {}

// Manager holds the active preference object. Exactly one object is active
// at a time; the server is authoritative for the result of partial updates.
type Manager struct {
	mu      sync.RWMutex
	current model.Preferences
	loaded  bool
	remote  service.PreferencesService
	theme   ThemePort
}

// NewManager creates a manager. A nil theme port disables theme side
// effects.
func NewManager(remote service.PreferencesService, theme ThemePort) *Manager {
	if theme == nil {
		theme = NopTheme{}
	}
	return &Manager{remote: remote, theme: theme}
}

// Current returns the active preference object. Before the first Fetch the
// hardcoded defaults are returned.
func (m *Manager) Current() model.Preferences {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.loaded {
		return model.DefaultPreferences()
	}
	return m.current
}

// Fetch loads the server-side preferences. On any failure, including "not
// found", the hardcoded defaults are substituted locally without being
// persisted. The theme is applied either way.
func (m *Manager) Fetch(ctx context.Context) model.Preferences {
	prefs, err := m.remote.GetPreferences(ctx)
	if err != nil {
		slog.Debug("preferences unavailable, using defaults", "error", err)
		defaults := model.DefaultPreferences()
		m.setCurrent(defaults)
		return defaults
	}
	m.setCurrent(*prefs)
	return *prefs
}

// Update transmits only the fields present in the patch. On success the
// server's full returned object replaces local state and the theme is
// re-applied; on failure prior state is left untouched and the structured
// error is returned.
func (m *Manager) Update(ctx context.Context, patch model.PreferencesPatch) (*model.Preferences, error) {
	merged, err := m.remote.UpdatePreferences(ctx, patch)
	if err != nil {
		return nil, err
	}
	m.setCurrent(*merged)
	return merged, nil
}

func (m *Manager) setCurrent(prefs model.Preferences) {
	m.mu.Lock()
	m.current = prefs
	m.loaded = true
	m.mu.Unlock()

	m.theme.Apply(prefs)
}

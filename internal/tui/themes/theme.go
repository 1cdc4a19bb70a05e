// Package themes derives the terminal color palette from the user's
// preference object. The palette is rebuilt from scratch on every apply, so
// applying the same preferences twice always lands on the same visual state.
package themes

import (
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/nhatminh/vifin/internal/model"
)

// Theme defines the visual style for all terminal output.
type Theme struct {
	Primary    lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
	Info       lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	Dark       bool

	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Normal        lipgloss.Style
	Bold          lipgloss.Style
	Selected      lipgloss.Style
	StatusSuccess lipgloss.Style
	StatusWarning lipgloss.Style
	StatusError   lipgloss.Style
	StatusInfo    lipgloss.Style
	IncomeAmount  lipgloss.Style
	ExpenseAmount lipgloss.Style
	BorderedBox   lipgloss.Style
	PageActive    lipgloss.Style
	PageInactive  lipgloss.Style
}

// FromPreferences builds a theme from a preference object. dark selects the
// dark-mode variant of the neutral colors; the primary color always comes
// from the preferences.
func FromPreferences(prefs model.Preferences, dark bool) Theme {
	primary := lipgloss.Color(prefs.PrimaryColor)
	if prefs.PrimaryColor == "" {
		primary = lipgloss.Color("#3B82F6")
	}

	foreground := lipgloss.Color("#1f2937")
	muted := lipgloss.Color("#6b7280")
	border := lipgloss.Color("#d1d5db")
	if dark {
		foreground = lipgloss.Color("#fafafa")
		muted = lipgloss.Color("#737373")
		border = lipgloss.Color("#404040")
	}

	t := Theme{
		Primary:    primary,
		Success:    lipgloss.Color("#10b981"),
		Warning:    lipgloss.Color("#f59e0b"),
		Error:      lipgloss.Color("#ef4444"),
		Info:       lipgloss.Color("#3b82f6"),
		Foreground: foreground,
		Muted:      muted,
		Border:     border,
		Dark:       dark,
	}

	t.Title = lipgloss.NewStyle().Bold(true).Foreground(primary).MarginBottom(1)
	t.Subtitle = lipgloss.NewStyle().Foreground(muted).MarginBottom(1)
	t.Normal = lipgloss.NewStyle().Foreground(foreground)
	t.Bold = lipgloss.NewStyle().Bold(true).Foreground(foreground)
	t.Selected = lipgloss.NewStyle().Background(primary).Foreground(lipgloss.Color("#fafafa")).Bold(true)
	t.StatusSuccess = lipgloss.NewStyle().Foreground(t.Success).Bold(true)
	t.StatusWarning = lipgloss.NewStyle().Foreground(t.Warning).Bold(true)
	t.StatusError = lipgloss.NewStyle().Foreground(t.Error).Bold(true)
	t.StatusInfo = lipgloss.NewStyle().Foreground(t.Info).Bold(true)
	t.IncomeAmount = lipgloss.NewStyle().Foreground(t.Success)
	t.ExpenseAmount = lipgloss.NewStyle().Foreground(t.Error)
	t.BorderedBox = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(1, 2)
	t.PageActive = lipgloss.NewStyle().Background(primary).Foreground(lipgloss.Color("#fafafa")).Padding(0, 1)
	t.PageInactive = lipgloss.NewStyle().Foreground(muted).Padding(0, 1)

	return t
}

// Applier implements prefs.ThemePort for the terminal. It resolves
// dark/light/auto and swaps the globally visible theme.
type Applier struct {
	mu     sync.RWMutex
	active Theme

	// DarkSignal reports the platform color-scheme hint; it is consulted
	// only when the theme preference is "auto", at apply time. Defaults to
	// lipgloss terminal background detection.
	DarkSignal func() bool
}

// NewApplier creates an applier seeded with the default preferences.
func NewApplier() *Applier {
	a := &Applier{DarkSignal: lipgloss.HasDarkBackground}
	a.Apply(model.DefaultPreferences())
	return a
}

// Apply implements prefs.ThemePort.
func (a *Applier) Apply(prefs model.Preferences) {
	dark := false
	switch prefs.Theme {
	case model.ThemeDark:
		dark = true
	case model.ThemeLight:
		dark = false
	default:
		if a.DarkSignal != nil {
			dark = a.DarkSignal()
		}
	}

	theme := FromPreferences(prefs, dark)

	a.mu.Lock()
	a.active = theme
	a.mu.Unlock()
}

// Active returns the currently applied theme.
func (a *Applier) Active() Theme {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.active
}

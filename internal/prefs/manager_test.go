package prefs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhatminh/vifin/internal/api"
	"github.com/nhatminh/vifin/internal/model"
	"github.com/nhatminh/vifin/internal/service"
)

type recordingTheme struct {
	applied []model.Preferences
}

func (r *recordingTheme) Apply(p model.Preferences) {
	r.applied = append(r.applied, p)
}

func TestCurrentBeforeFetchReturnsDefaults(t *testing.T) {
	m := NewManager(&service.MockPreferencesService{}, nil)
	assert.Equal(t, model.DefaultPreferences(), m.Current())
}

func TestFetchAppliesTheme(t *testing.T) {
	stored := model.DefaultPreferences()
	stored.Theme = model.ThemeDark
	stored.PrimaryColor = "#EF4444"

	remote := &service.MockPreferencesService{
		GetPreferencesFn: func(context.Context) (*model.Preferences, error) {
			p := stored
			return &p, nil
		},
	}
	theme := &recordingTheme{}
	m := NewManager(remote, theme)

	got := m.Fetch(context.Background())
	assert.Equal(t, stored, got)
	assert.Equal(t, stored, m.Current())
	require.Len(t, theme.applied, 1)
	assert.Equal(t, model.ThemeDark, theme.applied[0].Theme)
}

func TestFetchFailureFallsBackToDefaults(t *testing.T) {
	remote := &service.MockPreferencesService{
		GetPreferencesFn: func(context.Context) (*model.Preferences, error) {
			return nil, &api.APIError{StatusCode: 404, Message: "not found"}
		},
	}
	theme := &recordingTheme{}
	m := NewManager(remote, theme)

	got := m.Fetch(context.Background())
	assert.Equal(t, model.DefaultPreferences(), got)
	// Defaults are substituted locally; no save call happens.
	assert.Empty(t, remote.UpdateCalls)
	// The theme still applies so the UI isn't left unstyled.
	require.Len(t, theme.applied, 1)
}

func TestUpdateAdoptsServerResult(t *testing.T) {
	merged := model.DefaultPreferences()
	merged.Theme = model.ThemeDark
	merged.PrimaryColor = "#10B981"

	remote := &service.MockPreferencesService{
		UpdatePreferencesFn: func(_ context.Context, patch model.PreferencesPatch) (*model.Preferences, error) {
			// Only the patched field travels; the server answers whole.
			assert.NotNil(t, patch.Theme)
			assert.Nil(t, patch.PrimaryColor)
			p := merged
			return &p, nil
		},
	}
	theme := &recordingTheme{}
	m := NewManager(remote, theme)

	dark := model.ThemeDark
	got, err := m.Update(context.Background(), model.PreferencesPatch{Theme: &dark})
	require.NoError(t, err)

	// The server's merged object wins wholesale, including fields the
	// patch never mentioned.
	assert.Equal(t, merged, *got)
	assert.Equal(t, merged, m.Current())
	require.Len(t, theme.applied, 1)
	assert.Equal(t, "#10B981", theme.applied[0].PrimaryColor)
}

func TestUpdateFailureLeavesStateUntouched(t *testing.T) {
	remote := &service.MockPreferencesService{
		UpdatePreferencesFn: func(context.Context, model.PreferencesPatch) (*model.Preferences, error) {
			return nil, &api.ValidationError{Fields: map[string][]string{"theme": {"invalid choice"}}}
		},
	}
	theme := &recordingTheme{}
	m := NewManager(remote, theme)

	before := m.Current()
	bad := model.Theme("neon")
	_, err := m.Update(context.Background(), model.PreferencesPatch{Theme: &bad})
	require.Error(t, err)

	var valErr *api.ValidationError
	assert.ErrorAs(t, err, &valErr)
	assert.Equal(t, before, m.Current())
	assert.Empty(t, theme.applied)
}

func TestNilThemePortIsSafe(t *testing.T) {
	m := NewManager(&service.MockPreferencesService{}, nil)
	assert.NotPanics(t, func() {
		m.Fetch(context.Background())
	})
}

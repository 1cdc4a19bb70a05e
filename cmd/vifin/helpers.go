package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/nhatminh/vifin/internal/api"
	"github.com/nhatminh/vifin/internal/cli"
	"github.com/nhatminh/vifin/internal/ingest"
	"github.com/nhatminh/vifin/internal/pager"
	"github.com/nhatminh/vifin/internal/prefs"
	"github.com/nhatminh/vifin/internal/service"
	"github.com/nhatminh/vifin/internal/session"
	"github.com/nhatminh/vifin/internal/storage"
	"github.com/nhatminh/vifin/internal/tui/themes"
)

// The API client is the concrete implementation behind every service
// contract.
var (
	_ service.TransactionService  = (*api.Client)(nil)
	_ service.PreferencesService  = (*api.Client)(nil)
	_ service.NotificationService = (*api.Client)(nil)
	_ service.InsightsService     = (*api.Client)(nil)
	_ service.AuthService         = (*api.Client)(nil)
)

// app bundles the wired client-side services for one command invocation.
type app struct {
	client  *api.Client
	session *session.Session
	prefs   *prefs.Manager
	applier *themes.Applier
	render  *cli.Renderer

	store *storage.SQLiteStore
}

// newApp wires the client, session, and theme from the loaded config.
func newApp() (*app, error) {
	sessionStore, err := session.NewStore(viper.GetString("session.path"))
	if err != nil {
		return nil, err
	}

	sess := session.New(sessionStore, nil)
	client := api.New(viper.GetString("api.base_url"), sess)
	sess.SetAuth(client)

	applier := themes.NewApplier()

	return &app{
		client:  client,
		session: sess,
		prefs:   prefs.NewManager(client, applier),
		applier: applier,
		render:  cli.NewRenderer(applier),
	}, nil
}

// requireAuth restores the persisted session and fails when no valid token
// is available. On success the user's preferences are fetched so command
// output picks up their theme.
func (a *app) requireAuth(ctx context.Context) error {
	if err := a.session.Restore(ctx); err != nil {
		return fmt.Errorf("failed to restore session: %w", err)
	}
	if a.session.Status() != session.StatusAuthenticated {
		return fmt.Errorf("not logged in (run 'vifin login' first)")
	}
	a.prefs.Fetch(ctx)
	return nil
}

// openStore opens the local database lazily; commands that need drafts or
// the category cache call this.
func (a *app) openStore(ctx context.Context) (*storage.SQLiteStore, error) {
	if a.store != nil {
		return a.store, nil
	}

	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		var err error
		dbPath, err = defaultDatabasePath()
		if err != nil {
			return nil, err
		}
	}

	store, err := storage.NewSQLiteStore(dbPath)
	if err != nil {
		return nil, err
	}
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, err
	}
	a.store = store
	return store, nil
}

// close releases the local database if it was opened.
func (a *app) close() {
	if a.store != nil {
		_ = a.store.Close()
		a.store = nil
	}
}

// newWorkflow builds the ingestion workflow over a fresh pager. Drafts are
// best effort: when the local database cannot be opened the workflow runs
// without them.
func (a *app) newWorkflow(ctx context.Context) (*ingest.Workflow, *pager.Controller) {
	list := pager.NewController(a.client)

	var drafts ingest.DraftStore
	if store, err := a.openStore(ctx); err == nil {
		drafts = store
	}

	return ingest.NewWorkflow(a.client, list, drafts, a.dictationProvider()), list
}

// dictationProvider builds the configured speech recognizer, or nil when
// none is configured. The typed-nil from NewExecProvider must not leak into
// the interface, so the conversion is explicit.
func (a *app) dictationProvider() ingest.DictationProvider {
	if p := ingest.NewExecProvider(viper.GetString("dictation.command")); p != nil {
		return p
	}
	return nil
}

func defaultDatabasePath() (string, error) {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to resolve home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataDir, "vifin", "vifin.db"), nil
}

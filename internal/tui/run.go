package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhatminh/vifin/internal/notify"
	"github.com/nhatminh/vifin/internal/service"
)

// statusLifetime is how long transient status lines stay visible.
const statusLifetime = 4 * time.Second

// Run starts the transaction browser and blocks until the user quits. The
// notification poller is started for the lifetime of the view and stopped
// on teardown, so no timer outlives the program.
func Run(ctx context.Context, cfg Config, notifications service.NotificationService) error {
	program := tea.NewProgram(NewModel(cfg), tea.WithContext(ctx))

	var poller *notify.Poller
	if notifications != nil {
		poller = notify.NewPoller(notifications, notify.DefaultInterval, func(update notify.Update) {
			program.Send(notificationsMsg{unread: update.UnreadCount})
		})
		poller.Start(ctx)
		defer poller.Stop()
	}

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("TUI terminated abnormally: %w", err)
	}
	return nil
}

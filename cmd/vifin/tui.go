package main

import (
	"github.com/spf13/cobra"

	"github.com/nhatminh/vifin/internal/tui"
)

func tuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Interactive transaction browser",
		Long: `Full-screen transaction browser: paginated list, free-text entry,
delete with confirmation, and a live unread-notification badge. The colors
follow your saved theme preference.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.close()
			if err := app.requireAuth(cmd.Context()); err != nil {
				return err
			}

			workflow, list := app.newWorkflow(cmd.Context())

			unread, err := app.client.UnreadCount(cmd.Context())
			if err != nil {
				unread = 0
			}

			return tui.Run(cmd.Context(), tui.Config{
				Service:  app.client,
				Pager:    list,
				Workflow: workflow,
				Applier:  app.applier,
				Unread:   unread,
			}, app.client)
		},
	}
}

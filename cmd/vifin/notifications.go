package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/nhatminh/vifin/internal/notify"
)

func notifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notify",
		Short: "Read and watch notifications",
	}

	cmd.AddCommand(notifyListCmd())
	cmd.AddCommand(notifyWatchCmd())
	cmd.AddCommand(notifyReadCmd())
	cmd.AddCommand(notifyReadAllCmd())
	return cmd
}

func notifyListCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent notifications",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			if err := app.requireAuth(cmd.Context()); err != nil {
				return err
			}

			notifications, err := app.client.ListNotifications(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(notifications) == 0 {
				fmt.Println(app.render.Muted("no notifications"))
				return nil
			}

			for _, n := range notifications {
				marker := "•"
				if n.IsRead {
					marker = " "
				}
				fmt.Printf("%s %4d  %s  %s\n", marker, n.ID,
					n.CreatedAt.Format("02/01 15:04"), n.Title)
				if n.Message != "" {
					fmt.Println(app.render.Muted("        " + n.Message))
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", notify.DefaultLimit, "maximum notifications to fetch")
	return cmd
}

func notifyWatchCmd() *cobra.Command {
	var interval int

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Poll for notifications until interrupted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			if err := app.requireAuth(cmd.Context()); err != nil {
				return err
			}

			seen := make(map[int]bool)
			poller := notify.NewPoller(app.client, time.Duration(interval)*time.Second, func(update notify.Update) {
				for _, n := range update.Notifications {
					if n.IsRead || seen[n.ID] {
						continue
					}
					seen[n.ID] = true
					fmt.Printf("🔔 %s  %s\n", n.CreatedAt.Format("15:04"), n.Title)
					if n.Message != "" {
						fmt.Println(app.render.Muted("   " + n.Message))
					}
				}
			})

			poller.Start(cmd.Context())
			defer poller.Stop()

			fmt.Println(app.render.Muted("watching for notifications (Ctrl-C to stop)"))
			<-cmd.Context().Done()
			return nil
		},
	}

	cmd.Flags().IntVar(&interval, "interval", 30, "poll interval in seconds")
	return cmd
}

func notifyReadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "read <id>",
		Short: "Mark one notification as read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid notification id %q", args[0])
			}

			app, err := newApp()
			if err != nil {
				return err
			}
			if err := app.requireAuth(cmd.Context()); err != nil {
				return err
			}

			if err := app.client.MarkNotificationRead(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Println(app.render.Success(fmt.Sprintf("notification #%d marked read", id)))
			return nil
		},
	}
}

func notifyReadAllCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "read-all",
		Short: "Mark every notification as read",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			if err := app.requireAuth(cmd.Context()); err != nil {
				return err
			}

			if err := app.client.MarkAllNotificationsRead(cmd.Context()); err != nil {
				return err
			}
			fmt.Println(app.render.Success("all notifications marked read"))
			return nil
		},
	}
}

package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func chatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat [message]",
		Short: "Talk to the finance assistant",
		Long: `Send one message, or start an interactive conversation when no
message is given. Type "exit" or press Ctrl-D to leave.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			if err := app.requireAuth(cmd.Context()); err != nil {
				return err
			}

			if len(args) > 0 {
				reply, err := app.client.Chat(cmd.Context(), strings.Join(args, " "))
				if err != nil {
					return err
				}
				fmt.Println(reply)
				return nil
			}

			fmt.Println(app.render.Muted(`ask about your finances ("exit" to quit)`))
			scanner := bufio.NewScanner(os.Stdin)
			for {
				fmt.Print("you> ")
				if !scanner.Scan() {
					break
				}
				message := strings.TrimSpace(scanner.Text())
				if message == "" {
					continue
				}
				if message == "exit" || message == "quit" {
					break
				}

				reply, err := app.client.Chat(cmd.Context(), message)
				if err != nil {
					fmt.Println(app.render.Error(err.Error()))
					continue
				}
				fmt.Println(reply)
			}
			return scanner.Err()
		},
	}
}

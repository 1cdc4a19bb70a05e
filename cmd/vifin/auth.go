package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/nhatminh/vifin/internal/api"
	"github.com/nhatminh/vifin/internal/model"
)

func loginCmd() *cobra.Command {
	var username string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and persist the session token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}

			if username == "" {
				username, err = promptLine("Username: ")
				if err != nil {
					return err
				}
			}
			password, err := promptPassword("Password: ")
			if err != nil {
				return err
			}

			user, err := app.session.Login(cmd.Context(), username, password)
			if err != nil {
				return loginError(err)
			}

			fmt.Println(app.render.Success(fmt.Sprintf("logged in as %s", user.Username)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "account username")
	return cmd
}

func registerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "register",
		Short: "Create an account and log in",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}

			username, err := promptLine("Username: ")
			if err != nil {
				return err
			}
			email, err := promptLine("Email: ")
			if err != nil {
				return err
			}
			password, err := promptPassword("Password: ")
			if err != nil {
				return err
			}
			confirm, err := promptPassword("Confirm password: ")
			if err != nil {
				return err
			}

			// The server validates the pair too, but a mismatch is cheap to
			// catch before the request.
			if password != confirm {
				return fmt.Errorf("passwords do not match")
			}

			user, err := app.session.Register(cmd.Context(), model.Registration{
				Username:        username,
				Email:           email,
				Password:        password,
				PasswordConfirm: confirm,
			})
			if err != nil {
				return err
			}

			fmt.Println(app.render.Success(fmt.Sprintf("account created; logged in as %s", user.Username)))
			return nil
		},
	}
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the persisted session token",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			if err := app.session.Logout(); err != nil {
				return err
			}
			fmt.Println(app.render.Success("logged out"))
			return nil
		},
	}
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the authenticated identity",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			if err := app.requireAuth(cmd.Context()); err != nil {
				return err
			}

			user := app.session.User()
			fmt.Println(app.render.Title(user.Username))
			if user.Email != "" {
				fmt.Println(app.render.Muted(user.Email))
			}
			return nil
		},
	}
}

// loginError rewrites the structured API errors into login-appropriate
// wording.
func loginError(err error) error {
	var authErr *api.AuthError
	if errors.As(err, &authErr) {
		return fmt.Errorf("invalid username or password")
	}
	return err
}

func promptLine(prompt string) (string, error) {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func promptPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimSpace(string(raw)), nil
}

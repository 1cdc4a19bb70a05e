package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nhatminh/vifin/internal/ingest"
)

func dictateCmd() *cobra.Command {
	var listenOnly bool

	cmd := &cobra.Command{
		Use:   "dictate",
		Short: "Speak a transaction instead of typing it",
		Long: `Listen for one spoken sentence through the configured recognizer
(dictation.command) and submit it as a natural-language transaction.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.close()
			if err := app.requireAuth(cmd.Context()); err != nil {
				return err
			}

			workflow, _ := app.newWorkflow(cmd.Context())

			if err := workflow.DictationAvailable(); err != nil {
				var capErr *ingest.CapabilityError
				if errors.As(err, &capErr) {
					fmt.Println(app.render.Warning(capErr.Error()))
					fmt.Println(app.render.Muted(`set dictation.command in the config, e.g. "whisper-cli --once"`))
					return nil
				}
				return err
			}

			fmt.Println(app.render.Muted("listening…"))
			utterance, err := workflow.Dictate(cmd.Context())
			if err != nil {
				if errors.Is(err, ingest.ErrNoSpeech) {
					fmt.Println(app.render.Warning("no speech detected, try again"))
					return nil
				}
				if errors.Is(err, ingest.ErrPermissionDenied) {
					return fmt.Errorf("microphone access denied; check the recognizer's permissions")
				}
				return err
			}

			fmt.Printf("heard: %q\n", utterance)
			if listenOnly {
				return nil
			}

			tx, err := workflow.SubmitText(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Println(app.render.Success(fmt.Sprintf("recorded transaction #%d", tx.ID)))
			fmt.Println(app.render.TransactionRow(*tx))
			return nil
		},
	}

	cmd.Flags().BoolVar(&listenOnly, "listen-only", false, "print the recognized sentence without submitting it")
	return cmd
}

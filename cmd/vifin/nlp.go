package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nhatminh/vifin/internal/ingest"
)

func nlpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nlp",
		Short: "Create and query transactions in plain language",
	}

	cmd.AddCommand(nlpAddCmd())
	cmd.AddCommand(nlpQueryCmd())
	return cmd
}

func nlpAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add [sentence]",
		Short: `Create a transaction from a sentence, e.g. "Chi 50000 ăn sáng"`,
		Long: `Create a transaction from a natural-language sentence.

With no argument, a previously failed sentence (saved as a draft) is
resubmitted.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.close()
			if err := app.requireAuth(cmd.Context()); err != nil {
				return err
			}

			workflow, _ := app.newWorkflow(cmd.Context())

			text := strings.TrimSpace(strings.Join(args, " "))
			if text == "" {
				workflow.RestoreDraft(cmd.Context(), ingest.ModalityNLP)
				if workflow.Text() == "" {
					return fmt.Errorf("nothing to submit: give a sentence or leave a failed draft behind")
				}
				fmt.Println(app.render.Muted(fmt.Sprintf("resubmitting draft: %s", workflow.Text())))
			} else {
				workflow.SetText(text)
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
}

func nlpQueryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "query <question>",
		Short: `Ask about your spending, e.g. "Tháng này tiêu bao nhiêu?"`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			if err := app.requireAuth(cmd.Context()); err != nil {
				return err
			}

			answer, err := app.client.QueryNLP(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}

			fmt.Println(answer)
			return nil
		},
	}
}

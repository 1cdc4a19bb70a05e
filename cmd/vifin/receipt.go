package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nhatminh/vifin/internal/ingest"
)

func receiptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "receipt <image>",
		Short: "Create a transaction from a receipt photo",
		Long: `Upload a photo of a receipt; the OCR service extracts the amount,
merchant, and date and creates the transaction. The file must be an image of
at most 10 MB; both rules are checked locally before any upload.`,
		Args: cobra.ExactArgs(1),
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
			result, err := workflow.SubmitReceipt(cmd.Context(), args[0])
			if err != nil {
				var rejected *ingest.InputRejectedError
				if errors.As(err, &rejected) {
					return fmt.Errorf("%s", rejected.Message)
				}
				// Show whatever the OCR pass recognized even when no
				// transaction came out of it.
				if result != nil && result.RawText != "" {
					fmt.Println(app.render.Muted("recognized text:"))
					fmt.Println(result.RawText)
				}
				return err
			}

			tx := result.Transaction
			fmt.Println(app.render.Success(fmt.Sprintf("recorded transaction #%d", tx.ID)))
			fmt.Println(app.render.TransactionRow(*tx))

			info := result.ExtractedInfo
			if info.Merchant != "" || info.Amount != 0 {
				fmt.Println(app.render.Muted(fmt.Sprintf("extracted: %s, %.0f, %s", info.Merchant, float64(info.Amount), info.Date)))
			}
			return nil
		},
	}
}

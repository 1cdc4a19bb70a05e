package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/nhatminh/vifin/internal/model"
	"github.com/nhatminh/vifin/internal/ofx"
)

func importOFXCmd() *cobra.Command {
	var (
		incomeCategory  string
		expenseCategory string
		dryRun          bool
	)

	cmd := &cobra.Command{
		Use:   "import <file.ofx> [more files...]",
		Short: "Bulk-import transactions from OFX/QFX bank exports",
		Long: `Parse one or more OFX/QFX files and create a transaction for each
statement line. OFX files carry no category, so every expense goes to
--expense-category and every income to --income-category (name or id).
Duplicate lines across files are imported once.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.close()
			if err := app.requireAuth(cmd.Context()); err != nil {
				return err
			}

			expenseID, err := resolveCategoryRef(cmd.Context(), app, expenseCategory)
			if err != nil {
				return err
			}
			incomeID, err := resolveCategoryRef(cmd.Context(), app, incomeCategory)
			if err != nil {
				return err
			}

			files, err := expandGlobs(args)
			if err != nil {
				return err
			}

			parser := ofx.NewParser()
			seen := make(map[string]bool)
			var transactions []ofx.ImportedTransaction

			for _, file := range files {
				f, err := os.Open(file)
				if err != nil {
					return fmt.Errorf("failed to open %s: %w", file, err)
				}
				parsed, err := parser.ParseFile(cmd.Context(), f)
				_ = f.Close()
				if err != nil {
					return fmt.Errorf("%s: %w", file, err)
				}

				for _, tx := range parsed {
					if seen[tx.Hash()] {
						continue
					}
					seen[tx.Hash()] = true
					transactions = append(transactions, tx)
				}
			}

			if len(transactions) == 0 {
				fmt.Println(app.render.Muted("nothing to import"))
				return nil
			}

			if dryRun {
				for _, tx := range transactions {
					fmt.Printf("%s  %10.0f  %s\n", tx.Date.Format("2006-01-02"), float64(tx.Amount), tx.Description)
				}
				fmt.Println(app.render.Muted(fmt.Sprintf("%d transactions (dry run, nothing created)", len(transactions))))
				return nil
			}

			drafts := make([]model.TransactionDraft, 0, len(transactions))
			for _, tx := range transactions {
				category := expenseID
				if tx.Income {
					category = incomeID
				}
				drafts = append(drafts, model.TransactionDraft{
					Category:        category,
					Amount:          tx.Amount,
					Description:     tx.Description,
					TransactionDate: tx.Date,
				})
			}

			workflow, _ := app.newWorkflow(cmd.Context())
			bar := progressbar.Default(int64(len(drafts)), "importing")
			outcome, err := workflow.SubmitImport(cmd.Context(), drafts, func() { _ = bar.Add(1) })
			if err != nil {
				return err
			}
			_ = bar.Finish()

			fmt.Println(app.render.Success(fmt.Sprintf("imported %d transactions", outcome.Created)))
			if outcome.Failed > 0 {
				fmt.Println(app.render.Warning(fmt.Sprintf("%d transactions failed; rerun with --log-level debug for details", outcome.Failed)))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&incomeCategory, "income-category", "", "category for credits (required)")
	cmd.Flags().StringVar(&expenseCategory, "expense-category", "", "category for debits (required)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "parse and list without creating anything")
	_ = cmd.MarkFlagRequired("income-category")
	_ = cmd.MarkFlagRequired("expense-category")
	return cmd
}

// expandGlobs resolves shell-style patterns that were quoted past the shell.
func expandGlobs(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		matches, err := filepath.Glob(arg)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", arg, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files match %q", arg)
		}
		files = append(files, matches...)
	}
	return files, nil
}

package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/nhatminh/vifin/internal/model"
	"github.com/nhatminh/vifin/internal/pager"
)

func transactionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "transactions",
		Aliases: []string{"tx"},
		Short:   "Browse and manage transactions",
	}

	cmd.AddCommand(txListCmd())
	cmd.AddCommand(txAddCmd())
	cmd.AddCommand(txEditCmd())
	cmd.AddCommand(txDeleteCmd())
	return cmd
}

func txListCmd() *cobra.Command {
	var page int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions, one page at a time",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.close()
			if err := app.requireAuth(cmd.Context()); err != nil {
				return err
			}

			list := pager.NewController(app.client)
			if err := list.Load(cmd.Context(), page); err != nil {
				return err
			}

			items := list.Items()
			if len(items) == 0 {
				fmt.Println(app.render.Muted("No transactions yet."))
				return nil
			}

			for _, tx := range items {
				fmt.Println(app.render.TransactionRow(tx))
			}
			fmt.Println()
			fmt.Println(app.render.PageFooter(list.Window(), list.CurrentPage(), list.TotalPages(), list.Count()))
			return nil
		},
	}

	cmd.Flags().IntVarP(&page, "page", "p", 1, "page number")
	return cmd
}

func txAddCmd() *cobra.Command {
	var (
		amount      float64
		category    string
		description string
		date        string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a transaction from flags",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.close()
			if err := app.requireAuth(cmd.Context()); err != nil {
				return err
			}

			draft, err := buildDraft(cmd.Context(), app, amount, category, description, date)
			if err != nil {
				return err
			}

			workflow, _ := app.newWorkflow(cmd.Context())
			tx, err := workflow.SubmitForm(cmd.Context(), *draft)
			if err != nil {
				return err
			}

			fmt.Println(app.render.Success(fmt.Sprintf("recorded transaction #%d", tx.ID)))
			fmt.Println(app.render.TransactionRow(*tx))
			return nil
		},
	}

	cmd.Flags().Float64VarP(&amount, "amount", "a", 0, "amount (required)")
	cmd.Flags().StringVarP(&category, "category", "c", "", "category name or id (required)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "description")
	cmd.Flags().StringVar(&date, "date", "", "date as YYYY-MM-DD (default: today)")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("category")
	return cmd
}

func txEditCmd() *cobra.Command {
	var (
		amount      float64
		category    string
		description string
		date        string
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Update an existing transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid transaction id %q", args[0])
			}

			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.close()
			if err := app.requireAuth(cmd.Context()); err != nil {
				return err
			}

			draft, err := buildDraft(cmd.Context(), app, amount, category, description, date)
			if err != nil {
				return err
			}

			workflow, _ := app.newWorkflow(cmd.Context())
			tx, err := workflow.SubmitEdit(cmd.Context(), id, *draft)
			if err != nil {
				return err
			}

			fmt.Println(app.render.Success(fmt.Sprintf("updated transaction #%d", tx.ID)))
			fmt.Println(app.render.TransactionRow(*tx))
			return nil
		},
	}

	cmd.Flags().Float64VarP(&amount, "amount", "a", 0, "amount (required)")
	cmd.Flags().StringVarP(&category, "category", "c", "", "category name or id (required)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "description")
	cmd.Flags().StringVar(&date, "date", "", "date as YYYY-MM-DD (default: today)")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("category")
	return cmd
}

func txDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid transaction id %q", args[0])
			}

			app, err := newApp()
			if err != nil {
				return err
			}
			if err := app.requireAuth(cmd.Context()); err != nil {
				return err
			}

			if !yes {
				answer, err := promptLine(fmt.Sprintf("Delete transaction #%d? [y/N] ", id))
				if err != nil {
					return err
				}
				if answer != "y" && answer != "Y" {
					fmt.Println(app.render.Muted("aborted"))
					return nil
				}
			}

			if err := app.client.DeleteTransaction(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Println(app.render.Success(fmt.Sprintf("deleted transaction #%d", id)))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func categoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List categories and refresh the local cache",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.close()
			if err := app.requireAuth(cmd.Context()); err != nil {
				return err
			}

			categories, err := app.client.ListCategories(cmd.Context())
			if err != nil {
				return err
			}

			if store, err := app.openStore(cmd.Context()); err == nil {
				if err := store.CacheCategories(cmd.Context(), categories); err != nil {
					fmt.Println(app.render.Warning(fmt.Sprintf("category cache not updated: %v", err)))
				}
			}

			for _, cat := range categories {
				icon := cat.Icon
				if icon == "" {
					icon = "💰"
				}
				kind := "expense"
				if cat.Type == model.CategoryTypeIncome {
					kind = "income"
				}
				fmt.Printf("%3d  %s %s  %s\n", cat.ID, icon, cat.Name, app.render.Muted(kind))
			}
			return nil
		},
	}
}

// buildDraft assembles a create/update payload from flag values, resolving
// the category by id or by cached name.
func buildDraft(ctx context.Context, app *app, amount float64, category, description, date string) (*model.TransactionDraft, error) {
	categoryID, err := resolveCategoryRef(ctx, app, category)
	if err != nil {
		return nil, err
	}

	when := model.Today()
	if date != "" {
		parsed, err := time.Parse("2006-01-02", date)
		if err != nil {
			return nil, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", date)
		}
		when = model.NewDate(parsed.Year(), parsed.Month(), parsed.Day())
	}

	return &model.TransactionDraft{
		Category:        categoryID,
		Amount:          model.Amount(amount),
		Description:     description,
		TransactionDate: when,
	}, nil
}

// resolveCategoryRef accepts either a numeric category id or a name looked
// up in the local cache.
func resolveCategoryRef(ctx context.Context, app *app, ref string) (int, error) {
	if id, err := strconv.Atoi(ref); err == nil {
		return id, nil
	}

	store, err := app.openStore(ctx)
	if err != nil {
		return 0, fmt.Errorf("cannot resolve category %q without the local cache: %w", ref, err)
	}
	cat, err := store.ResolveCategory(ctx, ref)
	if err != nil {
		return 0, err
	}
	return cat.ID, nil
}

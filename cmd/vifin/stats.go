package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/nhatminh/vifin/internal/model"
)

func statsCmd() *cobra.Command {
	var start, end string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Income, expense, and per-category totals for a period",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			if err := app.requireAuth(cmd.Context()); err != nil {
				return err
			}

			startDate, err := parseDateFlag(start)
			if err != nil {
				return err
			}
			endDate, err := parseDateFlag(end)
			if err != nil {
				return err
			}

			stats, err := app.client.Statistics(cmd.Context(), startDate, endDate)
			if err != nil {
				return err
			}

			fmt.Println(app.render.Title("Thống kê"))
			fmt.Printf("income   %s\n", formatSigned(float64(stats.Summary.TotalIncome)))
			fmt.Printf("expense  %s\n", formatSigned(-float64(stats.Summary.TotalExpense)))
			fmt.Printf("balance  %s\n", formatSigned(float64(stats.Summary.Balance)))

			if len(stats.ByCategory) > 0 {
				fmt.Println()
				fmt.Println(app.render.Title("By category"))
				for _, c := range stats.ByCategory {
					icon := c.CategoryIcon
					if icon == "" {
						icon = "💰"
					}
					fmt.Printf("%s %-20s %12.0f  %s\n", icon, c.CategoryName, float64(c.Total),
						app.render.Muted(fmt.Sprintf("%d tx", c.Count)))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "start date as YYYY-MM-DD")
	cmd.Flags().StringVar(&end, "end", "", "end date as YYYY-MM-DD")
	return cmd
}

func parseDateFlag(v string) (model.Date, error) {
	if v == "" {
		return model.Date{}, nil
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return model.Date{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", v)
	}
	return model.NewDate(t.Year(), t.Month(), t.Day()), nil
}

func formatSigned(v float64) string {
	if v >= 0 {
		return fmt.Sprintf("+%.0f", v)
	}
	return fmt.Sprintf("%.0f", v)
}

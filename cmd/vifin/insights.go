package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func insightsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "insights",
		Short: "AI analysis of your spending",
		Long: `Read-only AI analysis: trends, a next-month forecast, anomalous
transactions, and savings suggestions. These services can be slow or down;
each section degrades to a note instead of failing the command.`,
	}

	cmd.AddCommand(insightsTrendsCmd())
	cmd.AddCommand(insightsPredictCmd())
	cmd.AddCommand(insightsAnomaliesCmd())
	cmd.AddCommand(insightsSavingsCmd())
	return cmd
}

func insightsTrendsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "trends",
		Short: "Weekly spending trend",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			if err := app.requireAuth(cmd.Context()); err != nil {
				return err
			}

			report, err := app.client.Trends(cmd.Context())
			if err != nil {
				fmt.Println(app.render.Warning(fmt.Sprintf("trend analysis unavailable: %v", err)))
				return nil
			}

			fmt.Println(app.render.Title("Spending trend"))
			fmt.Printf("%s (%+.1f%%)\n", report.Trend, report.TrendPercentage)
			for _, week := range report.WeeklyData {
				fmt.Printf("%-12s %12.0f\n", week.Week, float64(week.Total))
			}
			return nil
		},
	}
}

func insightsPredictCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "predict",
		Short: "Next-month spending forecast",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			if err := app.requireAuth(cmd.Context()); err != nil {
				return err
			}

			prediction, err := app.client.Predictions(cmd.Context())
			if err != nil {
				fmt.Println(app.render.Warning(fmt.Sprintf("prediction unavailable: %v", err)))
				return nil
			}

			fmt.Println(app.render.Title("Forecast"))
			fmt.Printf("predicted spending  %.0f\n", float64(prediction.PredictedAmount))
			fmt.Printf("confidence          %.0f%%\n", prediction.Confidence*100)
			fmt.Println(app.render.Muted(fmt.Sprintf("based on %d months of history", prediction.BasedOnMonths)))
			return nil
		},
	}
}

func insightsAnomaliesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "anomalies",
		Short: "Transactions that look out of pattern",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			if err := app.requireAuth(cmd.Context()); err != nil {
				return err
			}

			report, err := app.client.Anomalies(cmd.Context())
			if err != nil {
				fmt.Println(app.render.Warning(fmt.Sprintf("anomaly detection unavailable: %v", err)))
				return nil
			}
			if len(report.Anomalies) == 0 {
				fmt.Println(app.render.Muted("no anomalies detected"))
				return nil
			}

			fmt.Println(app.render.Title("Anomalies"))
			for _, a := range report.Anomalies {
				fmt.Printf("#%d  %s  %10.0f  %s\n", a.TransactionID,
					a.Date.Format("02/01/2006"), float64(a.Amount), a.Description)
				fmt.Println(app.render.Muted("    " + a.Reason))
			}
			return nil
		},
	}
}

func insightsSavingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "savings",
		Short: "Where you could spend less",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			if err := app.requireAuth(cmd.Context()); err != nil {
				return err
			}

			report, err := app.client.SavingsSuggestions(cmd.Context())
			if err != nil {
				fmt.Println(app.render.Warning(fmt.Sprintf("savings analysis unavailable: %v", err)))
				return nil
			}

			fmt.Println(app.render.Title("Savings suggestions"))
			for _, s := range report.Suggestions {
				fmt.Printf("%-20s %s\n", s.Category, s.Suggestion)
				fmt.Println(app.render.Muted(fmt.Sprintf("    potential savings: %.0f", float64(s.PotentialSavings))))
			}
			if report.TotalPotentialSavings > 0 {
				fmt.Println()
				fmt.Println(app.render.Success(fmt.Sprintf("total potential savings: %.0f", float64(report.TotalPotentialSavings))))
			}
			return nil
		},
	}
}

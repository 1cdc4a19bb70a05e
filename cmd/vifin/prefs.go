package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nhatminh/vifin/internal/model"
)

func prefsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Show and change your preferences",
	}

	cmd.AddCommand(prefsShowCmd())
	cmd.AddCommand(prefsSetCmd())
	return cmd
}

func prefsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the active preferences",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			if err := app.requireAuth(cmd.Context()); err != nil {
				return err
			}

			p := app.prefs.Current()
			fmt.Println(app.render.Title("Preferences"))
			fmt.Printf("theme                 %s\n", p.Theme)
			fmt.Printf("primary color         %s\n", p.PrimaryColor)
			fmt.Printf("report period         %s\n", p.DefaultReportPeriod)
			fmt.Printf("report emails         %s\n", p.ReportEmailFrequency)
			fmt.Printf("chart type            %s\n", p.DashboardChartType)
			fmt.Printf("large-tx threshold    %.0f\n", float64(p.LargeTransactionThreshold))
			fmt.Printf("notify budget         %t\n", p.NotifyBudgetExceeded)
			fmt.Printf("notify large tx       %t\n", p.NotifyLargeTransaction)
			fmt.Printf("notify anomalies      %t\n", p.NotifyAnomalyDetected)
			return nil
		},
	}
}

func prefsSetCmd() *cobra.Command {
	var (
		theme          string
		primaryColor   string
		period         string
		emailFrequency string
		chartType      string
		threshold      float64
		notifyBudget   string
		notifyLarge    string
		notifyAnomaly  string
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update preferences; only the flags you pass are sent",
		Long: `Update preferences. The update is partial: only the fields named by
flags are transmitted, and the server returns the merged result, which
becomes the active object (including the theme).`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			if err := app.requireAuth(cmd.Context()); err != nil {
				return err
			}

			var patch model.PreferencesPatch
			if cmd.Flags().Changed("theme") {
				v, err := parseTheme(theme)
				if err != nil {
					return err
				}
				patch.Theme = &v
			}
			if cmd.Flags().Changed("primary-color") {
				if !strings.HasPrefix(primaryColor, "#") {
					return fmt.Errorf("primary color must be a hex value like #3B82F6")
				}
				patch.PrimaryColor = &primaryColor
			}
			if cmd.Flags().Changed("period") {
				v := model.ReportPeriod(period)
				patch.DefaultReportPeriod = &v
			}
			if cmd.Flags().Changed("email-frequency") {
				v := model.EmailFrequency(emailFrequency)
				patch.ReportEmailFrequency = &v
			}
			if cmd.Flags().Changed("chart") {
				v := model.ChartType(chartType)
				patch.DashboardChartType = &v
			}
			if cmd.Flags().Changed("threshold") {
				v := model.Amount(threshold)
				patch.LargeTransactionThreshold = &v
			}
			if err := applyBoolFlag(cmd, "notify-budget", notifyBudget, &patch.NotifyBudgetExceeded); err != nil {
				return err
			}
			if err := applyBoolFlag(cmd, "notify-large", notifyLarge, &patch.NotifyLargeTransaction); err != nil {
				return err
			}
			if err := applyBoolFlag(cmd, "notify-anomaly", notifyAnomaly, &patch.NotifyAnomalyDetected); err != nil {
				return err
			}

			if patch.IsEmpty() {
				return fmt.Errorf("nothing to update: pass at least one flag")
			}

			merged, err := app.prefs.Update(cmd.Context(), patch)
			if err != nil {
				return err
			}

			fmt.Println(app.render.Success(fmt.Sprintf("preferences saved (theme %s, primary %s)", merged.Theme, merged.PrimaryColor)))
			return nil
		},
	}

	cmd.Flags().StringVar(&theme, "theme", "", "light, dark, or auto")
	cmd.Flags().StringVar(&primaryColor, "primary-color", "", "hex accent color, e.g. #3B82F6")
	cmd.Flags().StringVar(&period, "period", "", "default report period: week, month, quarter, year")
	cmd.Flags().StringVar(&emailFrequency, "email-frequency", "", "report emails: never, daily, weekly, monthly")
	cmd.Flags().StringVar(&chartType, "chart", "", "dashboard chart: line, bar, pie")
	cmd.Flags().Float64Var(&threshold, "threshold", 0, "large-transaction notification threshold")
	cmd.Flags().StringVar(&notifyBudget, "notify-budget", "", "notify on exceeded budgets: true or false")
	cmd.Flags().StringVar(&notifyLarge, "notify-large", "", "notify on large transactions: true or false")
	cmd.Flags().StringVar(&notifyAnomaly, "notify-anomaly", "", "notify on detected anomalies: true or false")
	return cmd
}

func parseTheme(v string) (model.Theme, error) {
	switch model.Theme(v) {
	case model.ThemeLight, model.ThemeDark, model.ThemeAuto:
		return model.Theme(v), nil
	}
	return "", fmt.Errorf("invalid theme %q (want light, dark, or auto)", v)
}

// applyBoolFlag turns a tri-state string flag (unset/true/false) into an
// optional patch field.
func applyBoolFlag(cmd *cobra.Command, name, value string, target **bool) error {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	switch value {
	case "true":
		v := true
		*target = &v
	case "false":
		v := false
		*target = &v
	default:
		return fmt.Errorf("--%s wants true or false, got %q", name, value)
	}
	return nil
}

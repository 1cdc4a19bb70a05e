package model

// Theme selects the visual mode.
type Theme string

// Valid theme values.
const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
	ThemeAuto  Theme = "auto"
)

// ChartType selects the dashboard chart rendering.
type ChartType string

// Valid chart types.
const (
	ChartLine ChartType = "line"
	ChartBar  ChartType = "bar"
	ChartPie  ChartType = "pie"
)

// ReportPeriod selects the default reporting window.
type ReportPeriod string

// Valid report periods.
const (
	PeriodWeek    ReportPeriod = "week"
	PeriodMonth   ReportPeriod = "month"
	PeriodQuarter ReportPeriod = "quarter"
	PeriodYear    ReportPeriod = "year"
)

// EmailFrequency selects how often the server emails reports.
type EmailFrequency string

// Valid email frequencies.
const (
	EmailNever   EmailFrequency = "never"
	EmailDaily   EmailFrequency = "daily"
	EmailWeekly  EmailFrequency = "weekly"
	EmailMonthly EmailFrequency = "monthly"
)

// Preferences is the singleton per-session settings object. The server is
// authoritative: updates are partial and the merged result comes back whole.
type Preferences struct {
	Theme                     Theme          `json:"theme"`
	PrimaryColor              string         `json:"primary_color"`
	SidebarCollapsed          bool           `json:"sidebar_collapsed"`
	DefaultReportPeriod       ReportPeriod   `json:"default_report_period"`
	ReportCategories          []int          `json:"report_categories"`
	ReportIncludeCharts       bool           `json:"report_include_charts"`
	ReportIncludeTables       bool           `json:"report_include_tables"`
	ReportEmailFrequency      EmailFrequency `json:"report_email_frequency"`
	NotifyBudgetExceeded      bool           `json:"notify_budget_exceeded"`
	NotifyLargeTransaction    bool           `json:"notify_large_transaction"`
	NotifyAnomalyDetected     bool           `json:"notify_anomaly_detected"`
	LargeTransactionThreshold Amount         `json:"large_transaction_threshold"`
	DashboardWidgets          []string       `json:"dashboard_widgets"`
	DashboardChartType        ChartType      `json:"dashboard_chart_type"`
}

// PreferencesPatch is a partial update: only non-nil fields are transmitted,
// and the server merges them into the stored object.
type PreferencesPatch struct {
	Theme                     *Theme          `json:"theme,omitempty"`
	PrimaryColor              *string         `json:"primary_color,omitempty"`
	SidebarCollapsed          *bool           `json:"sidebar_collapsed,omitempty"`
	DefaultReportPeriod       *ReportPeriod   `json:"default_report_period,omitempty"`
	ReportCategories          *[]int          `json:"report_categories,omitempty"`
	ReportIncludeCharts       *bool           `json:"report_include_charts,omitempty"`
	ReportIncludeTables       *bool           `json:"report_include_tables,omitempty"`
	ReportEmailFrequency      *EmailFrequency `json:"report_email_frequency,omitempty"`
	NotifyBudgetExceeded      *bool           `json:"notify_budget_exceeded,omitempty"`
	NotifyLargeTransaction    *bool           `json:"notify_large_transaction,omitempty"`
	NotifyAnomalyDetected     *bool           `json:"notify_anomaly_detected,omitempty"`
	LargeTransactionThreshold *Amount         `json:"large_transaction_threshold,omitempty"`
	DashboardWidgets          *[]string       `json:"dashboard_widgets,omitempty"`
	DashboardChartType        *ChartType      `json:"dashboard_chart_type,omitempty"`
}

// IsEmpty reports whether the patch would transmit no fields at all.
func (p PreferencesPatch) IsEmpty() bool {
	return p == PreferencesPatch{}
}

// DefaultPreferences returns the hardcoded fallback used when the server has
// no preferences stored. It is applied locally and never persisted until the
// user explicitly saves.
func DefaultPreferences() Preferences {
	return Preferences{
		Theme:                     ThemeLight,
		PrimaryColor:              "#3B82F6",
		SidebarCollapsed:          false,
		DefaultReportPeriod:       PeriodMonth,
		ReportCategories:          []int{},
		ReportIncludeCharts:       true,
		ReportIncludeTables:       true,
		ReportEmailFrequency:      EmailNever,
		NotifyBudgetExceeded:      true,
		NotifyLargeTransaction:    true,
		NotifyAnomalyDetected:     true,
		LargeTransactionThreshold: 1000000,
		DashboardWidgets:          []string{},
		DashboardChartType:        ChartLine,
	}
}

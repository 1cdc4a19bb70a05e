package model

// Statistics is the aggregate view over a date range.
type Statistics struct {
	Summary    StatisticsSummary   `json:"summary"`
	ByDate     []DatePoint         `json:"by_date"`
	ByCategory []CategoryBreakdown `json:"by_category"`
}

// StatisticsSummary holds the period totals.
type StatisticsSummary struct {
	TotalIncome  Amount `json:"total_income"`
	TotalExpense Amount `json:"total_expense"`
	Balance      Amount `json:"balance"`
}

// DatePoint is one day's totals in the by-date series.
type DatePoint struct {
	Date    Date   `json:"date"`
	Income  Amount `json:"income"`
	Expense Amount `json:"expense"`
}

// CategoryBreakdown is one category's share in the by-category series.
type CategoryBreakdown struct {
	CategoryName string `json:"category_name"`
	CategoryIcon string `json:"category_icon,omitempty"`
	Total        Amount `json:"total"`
	Count        int    `json:"count"`
}

// TrendReport is the AI spending-trend analysis.
type TrendReport struct {
	Trend           string      `json:"trend"`
	TrendPercentage float64     `json:"trend_percentage"`
	WeeklyData      []WeekPoint `json:"weekly_data"`
}

// WeekPoint is one week's total in the trend series.
type WeekPoint struct {
	Week  string `json:"week"`
	Total Amount `json:"total"`
}

// Prediction is the AI next-period spending forecast.
type Prediction struct {
	PredictedAmount Amount  `json:"predicted_amount"`
	Confidence      float64 `json:"confidence"`
	BasedOnMonths   int     `json:"based_on_months"`
}

// Anomaly is one unusually large or out-of-pattern transaction flagged by
// the AI service.
type Anomaly struct {
	TransactionID int    `json:"transaction_id"`
	Description   string `json:"description"`
	Amount        Amount `json:"amount"`
	Date          Date   `json:"date"`
	Reason        string `json:"reason"`
}

// AnomalyReport wraps the anomaly list.
type AnomalyReport struct {
	Anomalies []Anomaly `json:"anomalies"`
}

// SavingsSuggestion is one actionable recommendation.
type SavingsSuggestion struct {
	Category         string `json:"category"`
	Suggestion       string `json:"suggestion"`
	PotentialSavings Amount `json:"potential_savings"`
}

// SavingsReport is the AI savings analysis.
type SavingsReport struct {
	TotalPotentialSavings Amount              `json:"total_potential_savings"`
	Suggestions           []SavingsSuggestion `json:"suggestions"`
}

// OCRExtraction summarizes the fields the OCR service pulled from a receipt.
type OCRExtraction struct {
	Amount   Amount `json:"amount,omitempty"`
	Merchant string `json:"merchant,omitempty"`
	Date     string `json:"date,omitempty"`
}

// OCRResult is the outcome of a receipt upload: either a created transaction
// with an extraction summary, or an error that may still carry the raw
// recognized text for user inspection.
type OCRResult struct {
	Transaction   *Transaction  `json:"transaction,omitempty"`
	ExtractedInfo OCRExtraction `json:"extracted_info,omitempty"`
	Error         string        `json:"error,omitempty"`
	RawText       string        `json:"raw_text,omitempty"`
}

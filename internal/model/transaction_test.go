package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmountUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    float64
		wantErr bool
	}{
		{name: "decimal string", input: `"50000.00"`, want: 50000},
		{name: "plain number", input: `50000`, want: 50000},
		{name: "fractional number", input: `12.5`, want: 12.5},
		{name: "null", input: `null`, want: 0},
		{name: "empty string", input: `""`, want: 0},
		{name: "garbage", input: `"abc"`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a Amount
			err := json.Unmarshal([]byte(tt.input), &a)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, float64(a), 0.001)
		})
	}
}

func TestAmountMarshal(t *testing.T) {
	data, err := json.Marshal(Amount(50000))
	require.NoError(t, err)
	assert.Equal(t, `"50000.00"`, string(data))
}

func TestDateRoundTrip(t *testing.T) {
	d := NewDate(2025, time.March, 7)

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2025-03-07"`, string(data))

	var back Date
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, d.Equal(back.Time))
}

func TestDateZeroMarshalsNull(t *testing.T) {
	data, err := json.Marshal(Date{})
	require.NoError(t, err)
	assert.Equal(t, `null`, string(data))
}

func TestTransactionDecode(t *testing.T) {
	raw := `{
		"id": 42,
		"category": 3,
		"category_name": "Ăn uống",
		"category_icon": "🍜",
		"category_type": "expense",
		"amount": "50000.00",
		"description": "ăn sáng",
		"transaction_date": "2025-03-07"
	}`

	var tx Transaction
	require.NoError(t, json.Unmarshal([]byte(raw), &tx))

	assert.Equal(t, 42, tx.ID)
	assert.Equal(t, "Ăn uống", tx.CategoryName)
	assert.InDelta(t, 50000, float64(tx.Amount), 0.001)
	assert.False(t, tx.IsIncome())
	assert.InDelta(t, -50000, tx.SignedAmount(), 0.001)
}

func TestDraftValidate(t *testing.T) {
	valid := TransactionDraft{
		Category:        1,
		Amount:          50000,
		TransactionDate: Today(),
	}

	tests := []struct {
		name    string
		mutate  func(*TransactionDraft)
		wantErr string
	}{
		{name: "valid", mutate: func(*TransactionDraft) {}},
		{
			name:    "missing amount",
			mutate:  func(d *TransactionDraft) { d.Amount = 0 },
			wantErr: "amount",
		},
		{
			name:    "negative amount",
			mutate:  func(d *TransactionDraft) { d.Amount = -100 },
			wantErr: "amount",
		},
		{
			name:    "missing category",
			mutate:  func(d *TransactionDraft) { d.Category = 0 },
			wantErr: "category",
		},
		{
			name:    "missing date",
			mutate:  func(d *TransactionDraft) { d.TransactionDate = Date{} },
			wantErr: "date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := valid
			tt.mutate(&draft)
			err := draft.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestPreferencesPatchIsEmpty(t *testing.T) {
	assert.True(t, PreferencesPatch{}.IsEmpty())

	theme := ThemeDark
	assert.False(t, PreferencesPatch{Theme: &theme}.IsEmpty())
}

func TestDefaultPreferences(t *testing.T) {
	p := DefaultPreferences()

	assert.Equal(t, ThemeLight, p.Theme)
	assert.Equal(t, "#3B82F6", p.PrimaryColor)
	assert.Equal(t, PeriodMonth, p.DefaultReportPeriod)
	assert.Equal(t, EmailNever, p.ReportEmailFrequency)
	assert.Equal(t, ChartLine, p.DashboardChartType)
	assert.InDelta(t, 1000000, float64(p.LargeTransactionThreshold), 0.001)
	assert.True(t, p.NotifyBudgetExceeded)
	assert.True(t, p.NotifyLargeTransaction)
	assert.True(t, p.NotifyAnomalyDetected)
}

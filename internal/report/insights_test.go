package report

import (
	"strings"
	"testing"

	"fintrack/internal/core"
)

func TestBuildInsights_TipPriority(t *testing.T) {
	income := func(amount float64) core.Transaction {
		return core.Transaction{Type: core.Income, Category: "💼 Salary", Amount: amount, Date: "2025-03-01"}
	}
	expense := func(amount float64, shared bool) core.Transaction {
		return core.Transaction{Type: core.Expense, Category: "🏠 Housing", Amount: amount, Date: "2025-03-02", IsSplitwise: shared}
	}

	tests := []struct {
		name    string
		list    []core.Transaction
		split   core.SplitFilter
		wantTip string
	}{
		{
			name:    "no data",
			list:    nil,
			split:   core.SplitAll,
			wantTip: "Add your income and expenses to see insights!",
		},
		{
			name:    "pending split wins over savings praise",
			list:    []core.Transaction{income(1000), expense(100, false)},
			split:   core.SplitAll,
			wantTip: "You have 1 personal expenses.",
		},
		{
			name:    "shared view suppresses the split reminder",
			list:    []core.Transaction{income(1000), expense(100, false)},
			split:   core.SplitShared,
			wantTip: "Amazing! You're saving over 30%",
		},
		{
			name:    "overspending",
			list:    []core.Transaction{income(100), expense(500, true)},
			split:   core.SplitAll,
			wantTip: "You're spending more than you earn!",
		},
		{
			name:    "rate over 20",
			list:    []core.Transaction{income(1000), expense(750, true)},
			split:   core.SplitAll,
			wantTip: "Great job! You're saving over 20%",
		},
		{
			name:    "rate over 10",
			list:    []core.Transaction{income(1000), expense(850, true)},
			split:   core.SplitAll,
			wantTip: "Good progress!",
		},
		{
			name:    "rate under 10",
			list:    []core.Transaction{income(1000), expense(950, true)},
			split:   core.SplitAll,
			wantTip: "Try to save at least 10%",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildInsights(tt.list, tt.split)
			if !strings.Contains(got.Tip, tt.wantTip) {
				t.Errorf("Tip = %q, want it to contain %q", got.Tip, tt.wantTip)
			}
		})
	}
}

func TestBuildInsights_RateWithoutIncome(t *testing.T) {
	list := []core.Transaction{
		{Type: core.Expense, Category: "🏠 Housing", Amount: 100, Date: "2025-03-01"},
	}
	got := BuildInsights(list, core.SplitAll)

	if got.SavingsRate != 0 {
		t.Errorf("SavingsRate = %v, want 0 when income is zero", got.SavingsRate)
	}
	if got.Savings != -100 {
		t.Errorf("Savings = %v, want -100", got.Savings)
	}
	if got.TopCategory != "🏠 Housing" {
		t.Errorf("TopCategory = %q", got.TopCategory)
	}
}

func TestBuildQuickStats(t *testing.T) {
	got := BuildQuickStats(sampleList(), fixedNow)

	if !almostEqual(got.MonthExpense, 1100) {
		t.Errorf("MonthExpense = %v, want 1100", got.MonthExpense)
	}
	// The daily average divides by the elapsed days of the month.
	if !almostEqual(got.DailyAverage, 1100.0/15) {
		t.Errorf("DailyAverage = %v, want %v", got.DailyAverage, 1100.0/15)
	}
	if got.TopCategory != "🏠 Housing" {
		t.Errorf("TopCategory = %q, want Housing", got.TopCategory)
	}
	if got.Count != len(sampleList()) {
		t.Errorf("Count = %d, want %d", got.Count, len(sampleList()))
	}
}

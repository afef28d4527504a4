package report

import (
	"math"
	"testing"
	"time"

	"fintrack/internal/core"
)

var fixedNow = time.Date(2025, 3, 15, 12, 0, 0, 0, time.Local)

func sampleList() []core.Transaction {
	return []core.Transaction{
		{ID: 6, Type: core.Expense, Description: "Groceries", Category: "🍔 Food & Dining", Amount: 120, Date: "2025-03-14"},
		{ID: 5, Type: core.Expense, Description: "Dinner", Category: "🍔 Food & Dining", Amount: 80, Date: "2025-03-10"},
		{ID: 4, Type: core.Expense, Description: "Rent", Category: "🏠 Housing", Amount: 900, Date: "2025-03-01"},
		{ID: 3, Type: core.Income, Description: "Salary", Category: "💼 Salary", Amount: 2500, Date: "2025-03-01"},
		{ID: 2, Type: core.Expense, Description: "Train", Category: "🚗 Transportation", Amount: 60, Date: "2025-02-12"},
		{ID: 1, Type: core.Income, Description: "Gig", Category: "💰 Freelance", Amount: 300, Date: "2024-11-05"},
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestSummarize(t *testing.T) {
	got := Summarize(sampleList())

	if !almostEqual(got.Income, 2800) {
		t.Errorf("Income = %v, want 2800", got.Income)
	}
	if !almostEqual(got.Expense, 1160) {
		t.Errorf("Expense = %v, want 1160", got.Expense)
	}
	if !almostEqual(got.Net, got.Income-got.Expense) {
		t.Errorf("Net = %v, want income-expense", got.Net)
	}
}

// The category breakdown redistributes the same money: its slices must
// sum back to the type total.
func TestCategoryBreakdown_ConservesSum(t *testing.T) {
	list := sampleList()
	totals := Summarize(list)

	var sum float64
	breakdown := CategoryBreakdown(list, core.Expense)
	for _, b := range breakdown {
		sum += b.Amount
	}
	if !almostEqual(sum, totals.Expense) {
		t.Errorf("breakdown sum = %v, want %v", sum, totals.Expense)
	}

	// Descending order.
	for i := 1; i < len(breakdown); i++ {
		if breakdown[i].Amount > breakdown[i-1].Amount {
			t.Errorf("breakdown not sorted: %v", breakdown)
		}
	}

	if breakdown[0].Category != "🏠 Housing" {
		t.Errorf("top category = %q, want Housing", breakdown[0].Category)
	}
}

func TestMonthlySeries(t *testing.T) {
	series := MonthlySeries(sampleList(), fixedNow)

	if len(series) != 6 {
		t.Fatalf("series len = %d, want 6", len(series))
	}
	if series[0].Label != "Oct 24" {
		t.Errorf("first label = %q, want \"Oct 24\"", series[0].Label)
	}
	if series[5].Label != "Mar 25" {
		t.Errorf("last label = %q, want \"Mar 25\"", series[5].Label)
	}

	// November 2024 holds the gig income.
	if !almostEqual(series[1].Income, 300) {
		t.Errorf("Nov income = %v, want 300", series[1].Income)
	}
	// February 2025 holds the train ticket.
	if !almostEqual(series[4].Expense, 60) {
		t.Errorf("Feb expense = %v, want 60", series[4].Expense)
	}
	// March 2025 sums the current month.
	if !almostEqual(series[5].Expense, 1100) || !almostEqual(series[5].Income, 2500) {
		t.Errorf("Mar = %+v", series[5])
	}
}

func TestBudgetUsage(t *testing.T) {
	tests := []struct {
		name        string
		budget      float64
		wantPercent float64
		wantBand    BudgetBand
	}{
		{name: "exceeded clamps to 100", budget: 1000, wantPercent: 100, wantBand: BandExceeded},
		{name: "warning band", budget: 1300, wantPercent: 1100.0 / 1300 * 100, wantBand: BandWarning},
		{name: "midway band", budget: 2000, wantPercent: 55, wantBand: BandMidway},
		{name: "on track", budget: 5000, wantPercent: 22, wantBand: BandOnTrack},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BudgetUsage(sampleList(), tt.budget, fixedNow)

			if !almostEqual(got.Spent, 1100) {
				t.Errorf("Spent = %v, want 1100 (this month only)", got.Spent)
			}
			if !almostEqual(got.Percent, tt.wantPercent) {
				t.Errorf("Percent = %v, want %v", got.Percent, tt.wantPercent)
			}
			if got.Band != tt.wantBand {
				t.Errorf("Band = %v, want %v", got.Band, tt.wantBand)
			}
			if got.Message == "" {
				t.Error("Message is empty")
			}
		})
	}
}

// More spending can only push the percentage up, never down.
func TestBudgetUsage_Monotonic(t *testing.T) {
	list := sampleList()
	before := BudgetUsage(list, 3000, fixedNow)

	list = append(list, core.Transaction{
		ID: 7, Type: core.Expense, Category: "🛒 Shopping", Description: "Shoes",
		Amount: 150, Date: "2025-03-12",
	})
	after := BudgetUsage(list, 3000, fixedNow)

	if after.Percent < before.Percent {
		t.Errorf("percent dropped after spending: %v -> %v", before.Percent, after.Percent)
	}
}

func TestBudgetUsage_ZeroBudget(t *testing.T) {
	got := BudgetUsage(sampleList(), 0, fixedNow)
	if got.Percent != 0 {
		t.Errorf("Percent = %v, want 0 for zero budget", got.Percent)
	}
}

package report

import (
	"fmt"
	"time"

	"fintrack/internal/core"
)

// Insights summarizes savings behaviour for the active view.
type Insights struct {
	Savings      float64 `json:"savings"`
	SavingsRate  float64 `json:"savingsRate"` // percent, 0 when no income
	TopCategory  string  `json:"topCategory"` // empty when no expenses
	PendingSplit int     `json:"pendingSplit"`
	Tip          string  `json:"tip"`
}

// BuildInsights derives savings, savings rate, top expense category,
// pending split count and a single tip chosen by priority. The split
// filter in effect decides whether the pending-split reminder applies:
// the shared-only view already excludes personal items, so nagging
// there would be noise.
func BuildInsights(list []core.Transaction, split core.SplitFilter) Insights {
	totals := Summarize(list)

	ins := Insights{
		Savings: totals.Net,
	}
	if totals.Income > 0 {
		ins.SavingsRate = totals.Net / totals.Income * 100
	}

	breakdown := CategoryBreakdown(list, core.Expense)
	if len(breakdown) > 0 {
		ins.TopCategory = breakdown[0].Category
	}

	for _, tx := range list {
		if tx.Type == core.Expense && !tx.IsSplitwise {
			ins.PendingSplit++
		}
	}

	switch {
	case len(list) == 0:
		ins.Tip = "Add your income and expenses to see insights!"
	case ins.PendingSplit > 0 && split != core.SplitShared:
		ins.Tip = fmt.Sprintf("You have %d personal expenses. Don't forget to add shared items to Splitwise!", ins.PendingSplit)
	case ins.Savings < 0:
		ins.Tip = "You're spending more than you earn! Try to cut back on " + ins.TopCategory
	case ins.SavingsRate >= 30:
		ins.Tip = "Amazing! You're saving over 30% of your income!"
	case ins.SavingsRate >= 20:
		ins.Tip = "Great job! You're saving over 20% of your income."
	case ins.SavingsRate >= 10:
		ins.Tip = "Good progress! Try to push your savings rate above 20%."
	default:
		ins.Tip = "Try to save at least 10% of your income each month."
	}
	return ins
}

// QuickStats are the at-a-glance numbers shown alongside the list.
type QuickStats struct {
	MonthExpense float64 `json:"monthExpense"`
	DailyAverage float64 `json:"dailyAverage"`
	TopCategory  string  `json:"topCategory"`
	Count        int     `json:"count"`
}

// BuildQuickStats computes this-month spending, its per-day average over
// the elapsed days of the month, the overall top expense category and
// the transaction count.
func BuildQuickStats(list []core.Transaction, now time.Time) QuickStats {
	stats := QuickStats{Count: len(list)}
	for _, tx := range list {
		d := tx.Day()
		if tx.Type == core.Expense && d.Year() == now.Year() && d.Month() == now.Month() {
			stats.MonthExpense += tx.Amount
		}
	}
	stats.DailyAverage = stats.MonthExpense / float64(now.Day())

	breakdown := CategoryBreakdown(list, core.Expense)
	if len(breakdown) > 0 {
		stats.TopCategory = breakdown[0].Category
	}
	return stats
}

// Package report derives every displayed view from the transaction list.
// All functions are pure: they take an already-filtered list (plus a
// clock where calendar maths is involved) and never touch shared state,
// so every refresh recomputes from scratch.
package report

import (
	"sort"
	"time"

	"fintrack/internal/core"
)

// Totals are the headline sums for the active view.
type Totals struct {
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Net     float64 `json:"net"`
}

// Summarize sums income and expense amounts over the given list.
func Summarize(list []core.Transaction) Totals {
	var t Totals
	for _, tx := range list {
		switch tx.Type {
		case core.Income:
			t.Income += tx.Amount
		case core.Expense:
			t.Expense += tx.Amount
		}
	}
	t.Net = t.Income - t.Expense
	return t
}

// CategoryAmount is one slice of a per-category breakdown.
type CategoryAmount struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

// CategoryBreakdown groups the type-matching subset by category and sums
// amounts, sorted descending. Ties keep first-encountered order, so the
// result is stable over insertion order.
func CategoryBreakdown(list []core.Transaction, typ core.TransactionType) []CategoryAmount {
	index := make(map[string]int)
	var out []CategoryAmount
	for _, tx := range list {
		if tx.Type != typ {
			continue
		}
		i, ok := index[tx.Category]
		if !ok {
			i = len(out)
			index[tx.Category] = i
			out = append(out, CategoryAmount{Category: tx.Category})
		}
		out[i].Amount += tx.Amount
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Amount > out[j].Amount
	})
	return out
}

// MonthPoint is one bucket of the trailing monthly series.
type MonthPoint struct {
	Label   string  `json:"label"` // e.g. "Jan 06"
	Year    int     `json:"year"`
	Month   int     `json:"month"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
}

// trailingMonths is the window of the monthly time series.
const trailingMonths = 6

// MonthlySeries buckets income and expense sums into the trailing six
// calendar months including the current one, oldest first.
func MonthlySeries(list []core.Transaction, now time.Time) []MonthPoint {
	out := make([]MonthPoint, 0, trailingMonths)
	for i := trailingMonths - 1; i >= 0; i-- {
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local).AddDate(0, -i, 0)
		p := MonthPoint{
			Label: first.Format("Jan 06"),
			Year:  first.Year(),
			Month: int(first.Month()),
		}
		for _, tx := range list {
			d := tx.Day()
			if d.Year() != p.Year || int(d.Month()) != p.Month {
				continue
			}
			switch tx.Type {
			case core.Income:
				p.Income += tx.Amount
			case core.Expense:
				p.Expense += tx.Amount
			}
		}
		out = append(out, p)
	}
	return out
}

type BudgetBand string

const (
	BandExceeded BudgetBand = "exceeded"
	BandWarning  BudgetBand = "warning"
	BandMidway   BudgetBand = "midway"
	BandOnTrack  BudgetBand = "on-track"
)

// BudgetStatus reports consumption of the monthly budget by this
// calendar month's expenses.
type BudgetStatus struct {
	Spent   float64    `json:"spent"`
	Budget  float64    `json:"budget"`
	Percent float64    `json:"percent"` // clamped to 100 for display
	Band    BudgetBand `json:"band"`
	Message string     `json:"message"`
}

// BudgetUsage computes this-month consumption against the configured
// budget. The percentage is clamped to exactly 100 once spent >= budget.
func BudgetUsage(list []core.Transaction, budget float64, now time.Time) BudgetStatus {
	var spent float64
	for _, tx := range list {
		d := tx.Day()
		if tx.Type == core.Expense && d.Year() == now.Year() && d.Month() == now.Month() {
			spent += tx.Amount
		}
	}

	status := BudgetStatus{Spent: spent, Budget: budget}
	if budget > 0 {
		status.Percent = spent / budget * 100
	}
	if status.Percent > 100 {
		status.Percent = 100
	}

	switch {
	case status.Percent >= 100:
		status.Band = BandExceeded
		status.Message = "Budget exceeded! Time to cut back."
	case status.Percent >= 80:
		status.Band = BandWarning
		status.Message = "Almost there! Spend carefully."
	case status.Percent >= 50:
		status.Band = BandMidway
		status.Message = "Halfway through your budget."
	default:
		status.Band = BandOnTrack
		status.Message = "On track! Keep it up!"
	}
	return status
}

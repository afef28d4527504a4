package core

import (
	"fmt"
	"strings"
	"time"
)

// Filter dimensions are tagged variants matched exhaustively; the parse
// helpers reject anything outside the closed set so an unknown tag never
// silently widens a view.

type SplitFilter string

const (
	SplitAll      SplitFilter = "all"
	SplitShared   SplitFilter = "shared"
	SplitPersonal SplitFilter = "personal"
)

type TypeFilter string

const (
	TypeAll     TypeFilter = "all"
	TypeIncome  TypeFilter = "income"
	TypeExpense TypeFilter = "expense"
)

type PeriodFilter string

const (
	PeriodAll   PeriodFilter = "all"
	PeriodToday PeriodFilter = "today"
	PeriodWeek  PeriodFilter = "week"
	PeriodMonth PeriodFilter = "month"
)

func ParseSplitFilter(s string) (SplitFilter, error) {
	switch s {
	case "", string(SplitAll):
		return SplitAll, nil
	case string(SplitShared), "splitwise": // "splitwise" is the legacy tag
		return SplitShared, nil
	case string(SplitPersonal):
		return SplitPersonal, nil
	default:
		return "", fmt.Errorf("invalid split filter %q", s)
	}
}

func ParseTypeFilter(s string) (TypeFilter, error) {
	switch s {
	case "", string(TypeAll):
		return TypeAll, nil
	case string(TypeIncome):
		return TypeIncome, nil
	case string(TypeExpense):
		return TypeExpense, nil
	default:
		return "", fmt.Errorf("invalid type filter %q", s)
	}
}

func ParsePeriodFilter(s string) (PeriodFilter, error) {
	switch s {
	case "", string(PeriodAll):
		return PeriodAll, nil
	case string(PeriodToday):
		return PeriodToday, nil
	case string(PeriodWeek):
		return PeriodWeek, nil
	case string(PeriodMonth):
		return PeriodMonth, nil
	default:
		return "", fmt.Errorf("invalid period filter %q", s)
	}
}

// Filter holds the view parameters for a read path. The zero value
// matches everything. Filters never mutate the transaction list.
type Filter struct {
	// Month restricts to one calendar month, "YYYY-MM". Empty means all time.
	Month  string
	Split  SplitFilter
	Search string
	Type   TypeFilter
	Period PeriodFilter
}

// Match reports whether t passes every active stage. Stages compose as a
// logical AND, so their evaluation order does not matter.
func (f Filter) Match(t Transaction, now time.Time) bool {
	return f.matchSearch(t) &&
		f.matchType(t) &&
		f.matchMonth(t) &&
		f.matchPeriod(t, now) &&
		f.matchSplit(t)
}

// Apply returns the subset of list matching the filter, preserving order.
func (f Filter) Apply(list []Transaction, now time.Time) []Transaction {
	out := make([]Transaction, 0, len(list))
	for _, t := range list {
		if f.Match(t, now) {
			out = append(out, t)
		}
	}
	return out
}

func (f Filter) matchSearch(t Transaction) bool {
	q := strings.ToLower(strings.TrimSpace(f.Search))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(t.Description), q) ||
		strings.Contains(strings.ToLower(t.Category), q)
}

func (f Filter) matchType(t Transaction) bool {
	switch f.Type {
	case TypeIncome:
		return t.Type == Income
	case TypeExpense:
		return t.Type == Expense
	default:
		return true
	}
}

func (f Filter) matchMonth(t Transaction) bool {
	if f.Month == "" {
		return true
	}
	return strings.HasPrefix(t.Date, f.Month+"-")
}

func (f Filter) matchPeriod(t Transaction, now time.Time) bool {
	start := f.periodStart(now)
	if start.IsZero() {
		return true
	}
	return !t.Day().Before(start)
}

// periodStart returns the inclusive lower bound of the relative period,
// or the zero time when the period is unbounded.
func (f Filter) periodStart(now time.Time) time.Time {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	switch f.Period {
	case PeriodToday:
		return today
	case PeriodWeek:
		return today.AddDate(0, 0, -7)
	case PeriodMonth:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local)
	default:
		return time.Time{}
	}
}

func (f Filter) matchSplit(t Transaction) bool {
	switch f.Split {
	case SplitShared:
		return t.IsSplitwise
	case SplitPersonal:
		return !t.IsSplitwise
	default:
		return true
	}
}

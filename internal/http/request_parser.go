package http

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"fintrack/internal/core"
)

var monthPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

// parseFilter builds the list filter from query parameters. Unknown
// enum values are rejected rather than silently widened, so a typo in
// a filter never shows more data than the caller asked for.
func parseFilter(r *http.Request) (core.Filter, error) {
	q := r.URL.Query()

	var f core.Filter

	if month := strings.TrimSpace(q.Get("month")); month != "" {
		if !monthPattern.MatchString(month) {
			return core.Filter{}, fmt.Errorf("invalid month %q: expected YYYY-MM", month)
		}
		f.Month = month
	}

	split, err := core.ParseSplitFilter(q.Get("split"))
	if err != nil {
		return core.Filter{}, err
	}
	f.Split = split

	typ, err := core.ParseTypeFilter(q.Get("type"))
	if err != nil {
		return core.Filter{}, err
	}
	f.Type = typ

	period, err := core.ParsePeriodFilter(q.Get("period"))
	if err != nil {
		return core.Filter{}, err
	}
	f.Period = period

	f.Search = sanitizeInput(q.Get("search"))

	return f, nil
}

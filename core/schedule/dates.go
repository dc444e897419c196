package schedule

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// relativeExprRe matches +N with an optional unit letter; a bare +N means
// days.
var relativeExprRe = regexp.MustCompile(`^\+(\d+)([dwmy])?$`)

// InvalidDateExprError reports a date expression that matches none of the
// accepted forms.
type InvalidDateExprError struct {
	Input string
}

func (e *InvalidDateExprError) Error() string {
	return fmt.Sprintf("invalid date format %q: use YYYY-MM-DD (e.g. 2026-01-20), a relative offset (+2d, +3w, +2m, +1y) or \"today\"", e.Input)
}

// ResolveDateExpr parses an absolute (YYYY-MM-DD) or relative (+N, +Nd,
// +Nw, +Nm, +Ny, today) date expression against the reference date. A zero
// reference defaults to today at midnight. Month and year offsets use
// calendar arithmetic with end-of-month clamping.
func ResolveDateExpr(expr string, reference time.Time) (time.Time, error) {
	if reference.IsZero() {
		reference = Midnight(time.Now())
	}
	expr = strings.ToLower(strings.TrimSpace(expr))

	if expr == "today" {
		return reference, nil
	}

	if m := relativeExprRe.FindStringSubmatch(expr); m != nil {
		amount, err := strconv.Atoi(m[1])
		if err != nil {
			return time.Time{}, &InvalidDateExprError{Input: expr}
		}
		unit := m[2]
		if unit == "" {
			unit = "d"
		}
		switch unit {
		case "d":
			return reference.AddDate(0, 0, amount), nil
		case "w":
			return reference.AddDate(0, 0, 7*amount), nil
		case "m":
			return AddMonths(reference, amount), nil
		case "y":
			return AddMonths(reference, 12*amount), nil
		}
	}

	t, err := time.Parse(dateLayout, expr)
	if err != nil {
		return time.Time{}, &InvalidDateExprError{Input: expr}
	}
	return t, nil
}

// AddMonths adds n calendar months to t, clamping the day to the last day
// of the target month (Jan 31 +1m -> Feb 28). time.Time.AddDate would
// normalize the overflow into the following month instead.
func AddMonths(t time.Time, n int) time.Time {
	first := time.Date(t.Year(), t.Month()+time.Month(n), 1, 0, 0, 0, 0, t.Location())
	day := t.Day()
	if last := first.AddDate(0, 1, -1).Day(); day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, t.Location())
}

// Midnight truncates t to its calendar date.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// RangeOptions carries the inputs of the date range calculation: explicit
// overrides win over the config defaults, which win over "today" and a
// duration of DurationMonths calendar months.
type RangeOptions struct {
	StartOverride  *time.Time
	EndOverride    *time.Time
	ConfigStart    string // YYYY-MM-DD, empty for today
	DurationMonths int
}

// CalculateRange resolves the schedule date range. now supplies "today" for
// deterministic tests; a zero value uses the wall clock. An end at or
// before the start is not an error: the caller checks DateRange.Empty and
// downgrades it to a warning.
func CalculateRange(opts RangeOptions, now time.Time) (DateRange, error) {
	if now.IsZero() {
		now = Midnight(time.Now())
	}

	var start time.Time
	switch {
	case opts.StartOverride != nil:
		start = Midnight(*opts.StartOverride)
	case opts.ConfigStart != "":
		t, err := time.Parse(dateLayout, opts.ConfigStart)
		if err != nil {
			return DateRange{}, &InvalidDateExprError{Input: opts.ConfigStart}
		}
		start = t
	default:
		start = now
	}

	var end time.Time
	if opts.EndOverride != nil {
		end = Midnight(*opts.EndOverride)
	} else {
		end = AddMonths(start, opts.DurationMonths)
	}

	return DateRange{Start: start, End: end}, nil
}

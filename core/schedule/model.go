package schedule

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// TimeWindow is a clock-time interval on a single weekday. Dummy windows
// exist in configuration for completeness but never produce output shifts.
type TimeWindow struct {
	Start string `json:"start" yaml:"start"`
	End   string `json:"end" yaml:"end"`
	Dummy bool   `json:"dummy" yaml:"dummy"`
}

// Layer is one recurring time-window rotation with its own team. Either
// TimeWindows (weekday name -> window) or the legacy Days+TimeWindow pair
// describes when the layer is active; Normalize folds the legacy shape into
// TimeWindows.
type Layer struct {
	ID           string                `json:"-" yaml:"-"`
	Name         string                `json:"name" yaml:"name"`
	RotationTeam []string              `json:"rotation_team" yaml:"rotation_team"`
	Dummy        bool                  `json:"dummy" yaml:"dummy"`
	TimeWindows  map[string]TimeWindow `json:"time_windows" yaml:"time_windows"`

	// Legacy shape: a single window applied to every listed day.
	Days       []string    `json:"days" yaml:"days"`
	TimeWindow *TimeWindow `json:"time_window" yaml:"time_window"`
}

// Normalize folds the legacy Days+TimeWindow shape into TimeWindows and
// lowercases all weekday keys. Layers already using TimeWindows are left as
// declared.
func (l *Layer) Normalize() {
	if len(l.TimeWindows) > 0 {
		normalized := make(map[string]TimeWindow, len(l.TimeWindows))
		for day, w := range l.TimeWindows {
			normalized[strings.ToLower(day)] = w
		}
		l.TimeWindows = normalized
		return
	}
	if l.TimeWindow == nil || len(l.Days) == 0 {
		return
	}
	l.TimeWindows = make(map[string]TimeWindow, len(l.Days))
	for _, day := range l.Days {
		l.TimeWindows[strings.ToLower(day)] = *l.TimeWindow
	}
}

// DisplayName returns the configured name, falling back to the layer ID.
func (l Layer) DisplayName() string {
	if l.Name != "" {
		return l.Name
	}
	return l.ID
}

// DateRange is a half-open calendar interval [Start, End). Both bounds are
// dates at midnight.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Empty reports whether the range contains no dates (End <= Start).
func (r DateRange) Empty() bool { return !r.Start.Before(r.End) }

// Days returns the number of calendar dates in the range.
func (r DateRange) Days() int {
	if r.Empty() {
		return 0
	}
	return int(r.End.Sub(r.Start).Hours() / 24)
}

// Contains reports whether the date falls inside [Start, End).
func (r DateRange) Contains(d time.Time) bool {
	return !d.Before(r.Start) && d.Before(r.End)
}

// Shift is one materialized on-call slot. Shifts never represent dummy
// windows; suppression happens before materialization.
type Shift struct {
	Date       time.Time
	Layer      string
	Start      string
	End        string
	Person     string
	LayerIndex int
}

// DateKey returns the shift date formatted as YYYY-MM-DD.
func (s Shift) DateKey() string { return s.Date.Format(dateLayout) }

// clockRe enforces the fixed two-digit HH:MM form; the aggregator's lexical
// start-time ordering relies on it.
var clockRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):([0-5][0-9])$`)

// parseClock splits an "HH:MM" clock string.
func parseClock(v string) (hour, minute int, err error) {
	m := clockRe.FindStringSubmatch(v)
	if m == nil {
		return 0, 0, fmt.Errorf("invalid clock time %q: expected HH:MM", v)
	}
	hour, _ = strconv.Atoi(m[1])
	minute, _ = strconv.Atoi(m[2])
	return hour, minute, nil
}

// ValidateClock checks that v is a well-formed HH:MM clock string.
func ValidateClock(v string) error {
	_, _, err := parseClock(v)
	return err
}

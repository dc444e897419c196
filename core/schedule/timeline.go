package schedule

import (
	"math"
	"time"
)

// Layout is the time-axis geometry for the timeline renderer: whole-hour
// vertical bounds and a horizontal slot index per distinct date present in
// the presentation window. Dates with zero shifts get no slot.
type Layout struct {
	MinHour int
	MaxHour int
	Dates   []time.Time
	Slots   map[string]int
	Empty   bool
}

// TimeToHours maps an HH:MM clock string onto a continuous hour value
// (minutes become a fraction).
func TimeToHours(clock string) (float64, error) {
	h, m, err := parseClock(clock)
	if err != nil {
		return 0, err
	}
	return float64(h) + float64(m)/60, nil
}

// ComputeLayout restricts the schedule to the presentation window and
// derives the axis bounds and per-date slots. The upper bound is the floor
// of the latest time plus one hour, matching the rendered axis tick above
// the last shift. An empty filtered set yields Layout.Empty rather than an
// error.
func ComputeLayout(s Schedule, window DateRange) Layout {
	layout := Layout{Slots: make(map[string]int)}

	minTime := math.Inf(1)
	maxTime := math.Inf(-1)
	for _, shift := range s.Shifts {
		if !window.Contains(shift.Date) {
			continue
		}
		start, err := TimeToHours(shift.Start)
		if err != nil {
			continue
		}
		end, err := TimeToHours(shift.End)
		if err != nil {
			continue
		}
		minTime = math.Min(minTime, math.Min(start, end))
		maxTime = math.Max(maxTime, math.Max(start, end))

		key := shift.DateKey()
		if _, ok := layout.Slots[key]; !ok {
			// Canonical order is date-ascending, so slot indexes are too.
			layout.Slots[key] = len(layout.Dates)
			layout.Dates = append(layout.Dates, shift.Date)
		}
	}

	if len(layout.Dates) == 0 {
		layout.Empty = true
		return layout
	}
	layout.MinHour = int(math.Floor(minTime))
	layout.MaxHour = int(math.Floor(maxTime)) + 1
	return layout
}

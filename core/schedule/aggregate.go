package schedule

import (
	"errors"
	"sort"
	"time"
)

// ErrNoShifts signals a valid configuration that produced zero shifts, for
// example when every layer is dummy or has an empty team. Exporters accept
// the empty schedule; the CLI treats it as a failed run.
var ErrNoShifts = errors.New("no shifts produced")

// Schedule is the canonical, globally ordered shift sequence every exporter
// consumes.
type Schedule struct {
	Shifts []Shift
}

// Aggregate merges the shifts of all layers into the canonical order:
// ascending date, then ascending start-time string (lexical HH:MM
// comparison), with input order as the stable tiebreak. The input slice is
// not modified.
func Aggregate(shifts []Shift) Schedule {
	merged := make([]Shift, len(shifts))
	copy(merged, shifts)
	sort.SliceStable(merged, func(i, j int) bool {
		if !merged[i].Date.Equal(merged[j].Date) {
			return merged[i].Date.Before(merged[j].Date)
		}
		return merged[i].Start < merged[j].Start
	})
	return Schedule{Shifts: merged}
}

// Build runs the full pipeline for the given layers in declaration order:
// enumerate active dates, assign the rotation, materialize active shifts
// and aggregate them into the canonical sequence.
func Build(layers []Layer, rng DateRange) Schedule {
	var shifts []Shift
	for idx, layer := range layers {
		dates := EnumerateLayerDates(layer, rng)
		assignments := AssignRotation(layer, dates)
		shifts = append(shifts, Materialize(layer, idx, assignments)...)
	}
	return Aggregate(shifts)
}

// DayGroup is one calendar date's run of consecutive shifts in canonical
// order.
type DayGroup struct {
	Date   time.Time
	Shifts []Shift
}

// GroupByDate splits the canonical sequence at date boundaries. Boundary
// detection compares the date component only, so exporters can insert
// per-day separators.
func (s Schedule) GroupByDate() []DayGroup {
	var groups []DayGroup
	for _, shift := range s.Shifts {
		n := len(groups)
		if n == 0 || !groups[n-1].Date.Equal(shift.Date) {
			groups = append(groups, DayGroup{Date: shift.Date})
			n++
		}
		groups[n-1].Shifts = append(groups[n-1].Shifts, shift)
	}
	return groups
}

// People returns the distinct assigned people in order of first appearance
// in the canonical sequence.
func (s Schedule) People() []string {
	seen := make(map[string]bool)
	var people []string
	for _, shift := range s.Shifts {
		if !seen[shift.Person] {
			seen[shift.Person] = true
			people = append(people, shift.Person)
		}
	}
	return people
}

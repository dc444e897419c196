package schedule

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// uidNamespace is the fixed UUIDv5 namespace for event identifiers. Never
// change it: feed subscribers rely on re-runs reproducing identical UIDs.
var uidNamespace = uuid.MustParse("8f9e7a52-3c41-4f7e-9a0d-6b2c5d8e1f04")

// Event is one discrete timed calendar entry derived from a shift. Start
// and End share the shift's calendar date; cross-midnight windows are not
// supported. Created is the generation timestamp and is excluded from any
// idempotence guarantee.
type Event struct {
	UID         string
	Person      string
	Layer       string
	Summary     string
	Description string
	Start       time.Time
	End         time.Time
	Created     time.Time
}

// PersonEvents groups one person's events. Group order is first appearance
// in the canonical shift sequence.
type PersonEvents struct {
	Person string
	Events []Event
}

// MaterializeEvents expands the canonical shift sequence into per-person
// event groups. UIDs derive deterministically from (start timestamp,
// person, layer) under a fixed namespace. now stamps Created on every
// event; a zero value uses the wall clock.
func MaterializeEvents(s Schedule, scheduleName string, now time.Time) ([]PersonEvents, error) {
	if now.IsZero() {
		now = time.Now()
	}
	index := make(map[string]int)
	var groups []PersonEvents
	for _, shift := range s.Shifts {
		ev, err := eventFromShift(shift, scheduleName, now)
		if err != nil {
			return nil, err
		}
		i, ok := index[shift.Person]
		if !ok {
			i = len(groups)
			index[shift.Person] = i
			groups = append(groups, PersonEvents{Person: shift.Person})
		}
		groups[i].Events = append(groups[i].Events, ev)
	}
	return groups, nil
}

func eventFromShift(shift Shift, scheduleName string, now time.Time) (Event, error) {
	start, err := atClock(shift.Date, shift.Start)
	if err != nil {
		return Event{}, fmt.Errorf("shift %s start: %w", shift.DateKey(), err)
	}
	end, err := atClock(shift.Date, shift.End)
	if err != nil {
		return Event{}, fmt.Errorf("shift %s end: %w", shift.DateKey(), err)
	}
	seed := fmt.Sprintf("%s|%s|%s", start.Format("20060102T150405"), shift.Person, shift.Layer)
	return Event{
		UID:         uuid.NewSHA1(uidNamespace, []byte(seed)).String() + "@oncall",
		Person:      shift.Person,
		Layer:       shift.Layer,
		Summary:     "On-Call: " + shift.Layer,
		Description: fmt.Sprintf("On-call shift for %s\\nLayer: %s\\nSchedule: %s", shift.Person, shift.Layer, scheduleName),
		Start:       start,
		End:         end,
		Created:     now,
	}, nil
}

// atClock combines a calendar date with an HH:MM clock time.
func atClock(date time.Time, clock string) (time.Time, error) {
	h, m, err := parseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), h, m, 0, 0, date.Location()), nil
}

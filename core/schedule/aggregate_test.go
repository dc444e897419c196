package schedule

import (
	"reflect"
	"testing"
	"time"
)

func TestAggregateCanonicalOrder(t *testing.T) {
	jan5 := date(2026, time.January, 5)
	jan6 := date(2026, time.January, 6)
	shifts := []Shift{
		{Date: jan6, Start: "08:00", End: "10:30", Person: "c", Layer: "L3", LayerIndex: 2},
		{Date: jan5, Start: "13:00", End: "15:30", Person: "b", Layer: "L2", LayerIndex: 1},
		{Date: jan5, Start: "08:00", End: "10:30", Person: "a", Layer: "L1", LayerIndex: 0},
	}
	sched := Aggregate(shifts)
	got := make([]string, len(sched.Shifts))
	for i, s := range sched.Shifts {
		got[i] = s.DateKey() + " " + s.Start
	}
	want := []string{"2026-01-05 08:00", "2026-01-05 13:00", "2026-01-06 08:00"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestAggregateStableTiebreak(t *testing.T) {
	jan5 := date(2026, time.January, 5)
	// Same date and start time: layer declaration order must survive.
	shifts := []Shift{
		{Date: jan5, Start: "08:00", End: "09:00", Layer: "First", LayerIndex: 0},
		{Date: jan5, Start: "08:00", End: "10:00", Layer: "Second", LayerIndex: 1},
	}
	sched := Aggregate(shifts)
	if sched.Shifts[0].Layer != "First" || sched.Shifts[1].Layer != "Second" {
		t.Fatalf("tiebreak broke declaration order: %v", sched.Shifts)
	}
}

func TestAggregateIdempotent(t *testing.T) {
	layer := weekdayLayer([]string{"Alice", "Bob"}, "monday", "wednesday", "friday")
	sched := Build([]Layer{layer}, twoWeeks)
	resorted := Aggregate(sched.Shifts)
	if !reflect.DeepEqual(sched.Shifts, resorted.Shifts) {
		t.Fatalf("re-sorting changed an already-sorted schedule")
	}
}

func TestGroupByDateBoundaries(t *testing.T) {
	jan5 := date(2026, time.January, 5)
	jan7 := date(2026, time.January, 7)
	sched := Aggregate([]Shift{
		{Date: jan5, Start: "08:00"},
		{Date: jan5, Start: "13:00"},
		{Date: jan7, Start: "08:00"},
	})
	groups := sched.GroupByDate()
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}
	if len(groups[0].Shifts) != 2 || len(groups[1].Shifts) != 1 {
		t.Fatalf("bad group sizes %d/%d", len(groups[0].Shifts), len(groups[1].Shifts))
	}
	if !groups[1].Date.Equal(jan7) {
		t.Fatalf("bad boundary date %v", groups[1].Date)
	}
}

// The two-layer reference scenario: Layer A on Mondays with [Alice, Bob],
// Layer B on Tuesdays with [Carol], range Mon 2026-01-05 to Wed 2026-01-07
// exclusive.
func TestBuildTwoLayerScenario(t *testing.T) {
	layerA := Layer{ID: "a", Name: "Layer A", RotationTeam: []string{"Alice", "Bob"},
		TimeWindows: map[string]TimeWindow{"monday": {Start: "08:00", End: "18:00"}}}
	layerB := Layer{ID: "b", Name: "Layer B", RotationTeam: []string{"Carol"},
		TimeWindows: map[string]TimeWindow{"tuesday": {Start: "08:00", End: "18:00"}}}
	rng := DateRange{Start: date(2026, time.January, 5), End: date(2026, time.January, 7)}

	sched := Build([]Layer{layerA, layerB}, rng)
	if len(sched.Shifts) != 2 {
		t.Fatalf("got %d shifts, want 2", len(sched.Shifts))
	}
	first, second := sched.Shifts[0], sched.Shifts[1]
	if first.DateKey() != "2026-01-05" || first.Person != "Alice" || first.Layer != "Layer A" {
		t.Fatalf("bad first shift %+v", first)
	}
	if second.DateKey() != "2026-01-06" || second.Person != "Carol" || second.Layer != "Layer B" {
		t.Fatalf("bad second shift %+v", second)
	}
}

func TestPeopleFirstAppearanceOrder(t *testing.T) {
	jan5 := date(2026, time.January, 5)
	sched := Aggregate([]Shift{
		{Date: jan5, Start: "08:00", Person: "Bob"},
		{Date: jan5, Start: "10:00", Person: "Alice"},
		{Date: jan5, Start: "12:00", Person: "Bob"},
	})
	if got := sched.People(); !reflect.DeepEqual(got, []string{"Bob", "Alice"}) {
		t.Fatalf("got %v", got)
	}
}

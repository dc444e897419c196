package schedule

import (
	"math"
	"testing"
	"time"
)

func TestSummarize(t *testing.T) {
	jan5 := date(2026, time.January, 5)
	sched := Aggregate([]Shift{
		{Date: jan5, Start: "08:00", Person: "Alice"},
		{Date: jan5, Start: "10:00", Person: "Bob"},
		{Date: jan5, Start: "12:00", Person: "Alice"},
	})
	sum := Summarize(sched)
	if sum.Total != 3 {
		t.Fatalf("total %d", sum.Total)
	}
	if len(sum.PerPerson) != 2 || sum.PerPerson[0].Person != "Alice" || sum.PerPerson[0].Shifts != 2 {
		t.Fatalf("bad per-person %v", sum.PerPerson)
	}
	if sum.Min != 1 || sum.Max != 2 {
		t.Fatalf("min/max %d/%d", sum.Min, sum.Max)
	}
	if math.Abs(sum.Mean-1.5) > 1e-9 {
		t.Fatalf("mean %v", sum.Mean)
	}
	if math.Abs(sum.StdDev-math.Sqrt(0.5)) > 1e-9 {
		t.Fatalf("stddev %v", sum.StdDev)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	sum := Summarize(Schedule{})
	if sum.Total != 0 || len(sum.PerPerson) != 0 {
		t.Fatalf("expected zero summary, got %+v", sum)
	}
}

func TestSummarizeSinglePerson(t *testing.T) {
	sched := Aggregate([]Shift{{Date: date(2026, time.January, 5), Start: "08:00", Person: "Solo"}})
	sum := Summarize(sched)
	if sum.StdDev != 0 {
		t.Fatalf("stddev for one person should be 0, got %v", sum.StdDev)
	}
}

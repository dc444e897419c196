package schedule

import "time"

// weekdayKeys maps Go weekdays to the lowercase names used as TimeWindows
// keys in configuration.
var weekdayKeys = map[time.Weekday]string{
	time.Monday:    "monday",
	time.Tuesday:   "tuesday",
	time.Wednesday: "wednesday",
	time.Thursday:  "thursday",
	time.Friday:    "friday",
	time.Saturday:  "saturday",
	time.Sunday:    "sunday",
}

// LayerDate is one calendar date on which a layer is active, paired with
// the weekday key that selected it.
type LayerDate struct {
	Date    time.Time
	Weekday string
}

// EnumerateLayerDates walks every date in [rng.Start, rng.End) and emits,
// in strictly chronological order, the dates whose weekday has a configured
// window in the layer. Unconfigured weekdays are skipped with no gap
// filling. The emission order feeds rotation indexing, so it must never be
// reordered.
func EnumerateLayerDates(layer Layer, rng DateRange) []LayerDate {
	var dates []LayerDate
	for d := rng.Start; d.Before(rng.End); d = d.AddDate(0, 0, 1) {
		key := weekdayKeys[d.Weekday()]
		if _, ok := layer.TimeWindows[key]; ok {
			dates = append(dates, LayerDate{Date: d, Weekday: key})
		}
	}
	return dates
}

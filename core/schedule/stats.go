package schedule

import "gonum.org/v1/gonum/stat"

// PersonCount is one person's shift total, listed in first-appearance
// order.
type PersonCount struct {
	Person string
	Shifts int
}

// Summary describes how evenly the rotation distributed shifts across
// people.
type Summary struct {
	PerPerson []PersonCount
	Total     int
	Mean      float64
	StdDev    float64
	Min       int
	Max       int
}

// Summarize counts shifts per person and computes distribution statistics
// over the counts. An empty schedule yields a zero Summary.
func Summarize(s Schedule) Summary {
	counts := make(map[string]int)
	for _, shift := range s.Shifts {
		counts[shift.Person]++
	}
	people := s.People()
	if len(people) == 0 {
		return Summary{}
	}

	sum := Summary{Min: counts[people[0]], Max: counts[people[0]]}
	values := make([]float64, 0, len(people))
	for _, p := range people {
		n := counts[p]
		sum.PerPerson = append(sum.PerPerson, PersonCount{Person: p, Shifts: n})
		sum.Total += n
		values = append(values, float64(n))
		if n < sum.Min {
			sum.Min = n
		}
		if n > sum.Max {
			sum.Max = n
		}
	}
	sum.Mean = stat.Mean(values, nil)
	if len(values) > 1 {
		sum.StdDev = stat.StdDev(values, nil)
	}
	return sum
}

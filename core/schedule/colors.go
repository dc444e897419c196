package schedule

// Palette is the fixed set of RRGGBB fill colors cycled over people. Once
// the distinct-person count exceeds the palette size, colors repeat.
var Palette = []string{
	"E8F5E9", "E3F2FD", "FFF3E0", "FCE4EC", "F3E5F5",
	"E0F2F1", "FFF9C4", "FFE0B2", "F8BBD0", "D1C4E9",
	"C8E6C9", "BBDEFB", "FFE0B2", "F8BBD0", "E1BEE7",
}

// fallbackColor is returned for people the map has never seen.
const fallbackColor = "CCCCCC"

// ColorMap assigns each person a stable palette color in order of first
// appearance. It is an insertion-ordered association so iteration order is
// identical across runs of the same input.
type ColorMap struct {
	colors map[string]string
	order  []string
}

// AssignColors walks the canonical shift sequence and assigns
// palette[n mod len(palette)] to the n-th distinct person encountered.
func AssignColors(s Schedule) *ColorMap {
	m := &ColorMap{colors: make(map[string]string)}
	for _, shift := range s.Shifts {
		if _, ok := m.colors[shift.Person]; ok {
			continue
		}
		m.colors[shift.Person] = Palette[len(m.order)%len(Palette)]
		m.order = append(m.order, shift.Person)
	}
	return m
}

// Color returns the person's assigned color, or a neutral fallback for
// unknown people.
func (m *ColorMap) Color(person string) string {
	if c, ok := m.colors[person]; ok {
		return c
	}
	return fallbackColor
}

// People returns the assigned people in first-appearance order.
func (m *ColorMap) People() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// Len returns the number of distinct people assigned a color.
func (m *ColorMap) Len() int { return len(m.order) }

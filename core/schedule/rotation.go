package schedule

// Assignment tags one enumerated date with its rotation outcome. Suppressed
// entries carry a person like any other: the rotation index advances across
// them so that dummy windows never perturb who is assigned to later dates.
type Assignment struct {
	Date       LayerDate
	Person     string
	Window     TimeWindow
	Suppressed bool
}

// AssignRotation maps each enumerated date to a person via cyclic rotation
// over the layer's team (position modulo team size). An empty team yields
// no assignments. Layer-wide or window-level dummy flags mark the entry
// Suppressed rather than dropping it, keeping the cadence invariant
// explicit.
func AssignRotation(layer Layer, dates []LayerDate) []Assignment {
	team := layer.RotationTeam
	if len(team) == 0 {
		return nil
	}
	assignments := make([]Assignment, 0, len(dates))
	for i, d := range dates {
		window := layer.TimeWindows[d.Weekday]
		assignments = append(assignments, Assignment{
			Date:       d,
			Person:     team[i%len(team)],
			Window:     window,
			Suppressed: layer.Dummy || window.Dummy,
		})
	}
	return assignments
}

// Materialize turns the active assignments of a layer into shifts.
// Suppressed assignments are dropped here, after rotation indexing, so a
// Shift never represents a dummy window. layerIndex records declaration
// order for downstream tie-breaking.
func Materialize(layer Layer, layerIndex int, assignments []Assignment) []Shift {
	var shifts []Shift
	for _, a := range assignments {
		if a.Suppressed {
			continue
		}
		shifts = append(shifts, Shift{
			Date:       a.Date.Date,
			Layer:      layer.DisplayName(),
			Start:      a.Window.Start,
			End:        a.Window.End,
			Person:     a.Person,
			LayerIndex: layerIndex,
		})
	}
	return shifts
}

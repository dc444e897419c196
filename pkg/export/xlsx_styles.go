package export

import "github.com/xuri/excelize/v2"

// styleSet caches the workbook style IDs. excelize styles are registered
// once per file and referenced by ID, so per-person fills are built lazily
// and memoized per color.
type styleSet struct {
	title     int
	subtitle  int
	period    int
	generated int
	header    int

	perColor map[string]rowStyleIDs
}

type rowStyleIDs struct {
	data  int
	date  int
	hours int
}

func centered() *excelize.Alignment {
	return &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true}
}

func thinBorder() []excelize.Border {
	border := make([]excelize.Border, 0, 4)
	for _, side := range []string{"left", "right", "top", "bottom"} {
		border = append(border, excelize.Border{Type: side, Style: 1, Color: "000000"})
	}
	return border
}

func solidFill(color string) excelize.Fill {
	return excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}}
}

func newStyleSet(f *excelize.File) (*styleSet, error) {
	st := &styleSet{perColor: make(map[string]rowStyleIDs)}
	var err error

	if st.title, err = f.NewStyle(&excelize.Style{
		Fill:      solidFill("1F4788"),
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF", Size: 14},
		Alignment: centered(),
	}); err != nil {
		return nil, err
	}
	if st.subtitle, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Italic: true},
		Alignment: centered(),
	}); err != nil {
		return nil, err
	}
	if st.period, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: centered(),
	}); err != nil {
		return nil, err
	}
	if st.generated, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Italic: true, Size: 9},
		Alignment: centered(),
	}); err != nil {
		return nil, err
	}
	if st.header, err = f.NewStyle(&excelize.Style{
		Fill:      solidFill("1F4788"),
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF", Size: 11},
		Alignment: centered(),
		Border:    thinBorder(),
	}); err != nil {
		return nil, err
	}
	return st, nil
}

// rowStyles returns the data/date/hours style IDs for a fill color,
// registering them on first use.
func (st *styleSet) rowStyles(f *excelize.File, color string) (rowStyleIDs, error) {
	if ids, ok := st.perColor[color]; ok {
		return ids, nil
	}
	base := excelize.Style{
		Fill:      solidFill(color),
		Alignment: centered(),
		Border:    thinBorder(),
	}

	var ids rowStyleIDs
	var err error
	if ids.data, err = f.NewStyle(&base); err != nil {
		return rowStyleIDs{}, err
	}

	dateStyle := base
	dateFmt := "yyyy-mm-dd"
	dateStyle.CustomNumFmt = &dateFmt
	if ids.date, err = f.NewStyle(&dateStyle); err != nil {
		return rowStyleIDs{}, err
	}

	hoursStyle := base
	hoursFmt := "0.0"
	hoursStyle.CustomNumFmt = &hoursFmt
	if ids.hours, err = f.NewStyle(&hoursStyle); err != nil {
		return rowStyleIDs{}, err
	}

	st.perColor[color] = ids
	return ids, nil
}

package export

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rotaplan/oncall/core/schedule"
)

// Timeline geometry in pixels.
const (
	svgDayWidth     = 90
	svgHourHeight   = 36
	svgMarginLeft   = 70
	svgMarginTop    = 90
	svgMarginBottom = 40
	svgLegendWidth  = 170
	svgBarInset     = 6
)

var svgEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

// WriteTimelineSVG renders the schedule as a timeline: one column per date
// carrying a slot in the layout, shift rectangles filled with the person's
// color, an inverted hour axis (earlier times at the top) and a legend
// sorted by person name. An empty layout writes nothing and returns nil.
func WriteTimelineSVG(path, title string, sched schedule.Schedule, layout schedule.Layout, colors *schedule.ColorMap, window schedule.DateRange) error {
	if layout.Empty {
		return nil
	}

	chartWidth := len(layout.Dates) * svgDayWidth
	chartHeight := (layout.MaxHour - layout.MinHour) * svgHourHeight
	width := svgMarginLeft + chartWidth + svgLegendWidth
	height := svgMarginTop + chartHeight + svgMarginBottom

	yFor := func(hours float64) float64 {
		return svgMarginTop + (hours-float64(layout.MinHour))*svgHourHeight
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n", width, height, width, height)
	fmt.Fprintf(&b, `<rect x="0" y="0" width="%d" height="%d" fill="#ffffff"/>`+"\n", width, height)

	// Title: schedule name plus the rendered period.
	fmt.Fprintf(&b, `<text x="%d" y="24" text-anchor="middle" font-size="16" font-weight="bold" font-family="sans-serif">%s</text>`+"\n",
		svgMarginLeft+chartWidth/2, svgEscaper.Replace(title))
	fmt.Fprintf(&b, `<text x="%d" y="42" text-anchor="middle" font-size="11" font-family="sans-serif">%s to %s</text>`+"\n",
		svgMarginLeft+chartWidth/2, window.Start.Format("2006-01-02"), window.End.Format("2006-01-02"))

	// Hour gridlines and labels.
	for h := layout.MinHour; h <= layout.MaxHour; h++ {
		y := yFor(float64(h))
		fmt.Fprintf(&b, `<line x1="%d" y1="%.1f" x2="%d" y2="%.1f" stroke="#cccccc" stroke-dasharray="4,3"/>`+"\n",
			svgMarginLeft, y, svgMarginLeft+chartWidth, y)
		fmt.Fprintf(&b, `<text x="%d" y="%.1f" text-anchor="end" font-size="10" font-family="sans-serif">%02d:00</text>`+"\n",
			svgMarginLeft-8, y+3, h)
	}

	// Date labels above each occupied column.
	for i, date := range layout.Dates {
		x := svgMarginLeft + i*svgDayWidth + svgDayWidth/2
		fmt.Fprintf(&b, `<text x="%d" y="%d" text-anchor="middle" font-size="10" font-weight="bold" font-family="sans-serif">%s</text>`+"\n",
			x, svgMarginTop-22, date.Format("2006-01-02"))
		fmt.Fprintf(&b, `<text x="%d" y="%d" text-anchor="middle" font-size="10" font-family="sans-serif">%s</text>`+"\n",
			x, svgMarginTop-10, date.Format("Mon"))
	}

	// Shift bars.
	for _, shift := range sched.Shifts {
		slot, ok := layout.Slots[shift.DateKey()]
		if !ok {
			continue
		}
		start, err := schedule.TimeToHours(shift.Start)
		if err != nil {
			continue
		}
		end, err := schedule.TimeToHours(shift.End)
		if err != nil {
			continue
		}
		x := svgMarginLeft + slot*svgDayWidth + svgBarInset
		y := yFor(start)
		h := (end - start) * svgHourHeight
		fmt.Fprintf(&b, `<rect x="%d" y="%.1f" width="%d" height="%.1f" fill="#%s" stroke="#000000"/>`+"\n",
			x, y, svgDayWidth-2*svgBarInset, h, colors.Color(shift.Person))
		fmt.Fprintf(&b, `<text x="%d" y="%.1f" text-anchor="middle" font-size="9" font-weight="bold" font-family="sans-serif">%s</text>`+"\n",
			svgMarginLeft+slot*svgDayWidth+svgDayWidth/2, y+h/2+3, svgEscaper.Replace(shift.Person))
	}

	// Legend, alphabetical like the reference renderer.
	people := colors.People()
	sort.Strings(people)
	legendX := svgMarginLeft + chartWidth + 20
	fmt.Fprintf(&b, `<text x="%d" y="%d" font-size="11" font-weight="bold" font-family="sans-serif">Team Members</text>`+"\n",
		legendX, svgMarginTop)
	for i, person := range people {
		y := svgMarginTop + 14 + i*18
		fmt.Fprintf(&b, `<rect x="%d" y="%d" width="12" height="12" fill="#%s" stroke="#000000"/>`+"\n",
			legendX, y, colors.Color(person))
		fmt.Fprintf(&b, `<text x="%d" y="%d" font-size="10" font-family="sans-serif">%s</text>`+"\n",
			legendX+18, y+10, svgEscaper.Replace(person))
	}

	b.WriteString("</svg>\n")
	return writeAtomic(path, []byte(b.String()))
}

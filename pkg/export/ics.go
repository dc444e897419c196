package export

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"github.com/rotaplan/oncall/core/schedule"
)

const icsTimeLayout = "20060102T150405"

var loneDigitRe = regexp.MustCompile(`\b(\d)\b`)

// SanitizePersonFilename derives a safe feed filename from a person name:
// anything outside letters, digits, spaces, underscores and hyphens becomes
// an underscore, and lone digits are zero-padded so "Utente 1" sorts before
// "Utente 10" as "Utente 01".
func SanitizePersonFilename(person string) string {
	var b strings.Builder
	for _, r := range person {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == ' ', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return loneDigitRe.ReplaceAllString(b.String(), "0${1}")
}

// WriteICSFiles writes one iCalendar feed per person into dir, creating it
// if needed. Each feed is written atomically. It returns the written file
// paths in group order.
func WriteICSFiles(dir string, groups []schedule.PersonEvents) ([]string, error) {
	if len(groups) == 0 {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	paths := make([]string, 0, len(groups))
	for _, group := range groups {
		path := filepath.Join(dir, SanitizePersonFilename(group.Person)+".ics")
		if err := writeAtomic(path, []byte(renderCalendar(group))); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func renderCalendar(group schedule.PersonEvents) string {
	var b strings.Builder
	line := func(s string) {
		b.WriteString(s)
		b.WriteByte('\n')
	}
	line("BEGIN:VCALENDAR")
	line("VERSION:2.0")
	line("PRODID:-//On-Call Scheduler//EN")
	line("X-WR-CALNAME:" + group.Person + " - On-Call Schedule")
	line("X-WR-TIMEZONE:UTC")
	line("CALSCALE:GREGORIAN")
	line("METHOD:PUBLISH")
	for _, ev := range group.Events {
		line("BEGIN:VEVENT")
		line("UID:" + ev.UID)
		line("DTSTAMP:" + ev.Created.UTC().Format(icsTimeLayout) + "Z")
		line("DTSTART:" + ev.Start.Format(icsTimeLayout))
		line("DTEND:" + ev.End.Format(icsTimeLayout))
		line("SUMMARY:" + ev.Summary)
		line("DESCRIPTION:" + ev.Description)
		line("LOCATION:On-Call")
		line("STATUS:CONFIRMED")
		line("TRANSP:OPAQUE")
		line("BEGIN:VALARM")
		line("TRIGGER:-PT15M")
		line("ACTION:DISPLAY")
		line("DESCRIPTION:On-Call shift starts in 15 minutes")
		line("END:VALARM")
		line("END:VEVENT")
	}
	line("END:VCALENDAR")
	return b.String()
}

// writeAtomic writes through a temp file and renames it into place so a
// failed write leaves no partial output.
func writeAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

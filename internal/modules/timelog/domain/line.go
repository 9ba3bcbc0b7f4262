package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	apperrors "timeclock/internal/platform/errors"
)

// OpenLayout renders a freshly opened entry: weekday, month, day, year, start and a
// trailing separator with no end time.
const OpenLayout = "Mon Jan 02 2006  15:04-"

var entryPattern = regexp.MustCompile(`^\w{3} \w{3} \d{2} \d{4}  \d{2}:\d{2}-`)

type LineKind int

const (
	LineEntry LineKind = iota
	LineComment
	LineBlank
	LineMalformed
)

func (k LineKind) String() string {
	switch k {
	case LineEntry:
		return "entry"
	case LineComment:
		return "comment"
	case LineBlank:
		return "blank"
	default:
		return "malformed"
	}
}

// Record is the structured content of an entry line.
type Record struct {
	Date     time.Time
	Start    time.Time
	End      *time.Time
	Category string
	Raw      string
}

// Line is one physical line of the log. Record is set only for LineEntry. EOL holds the
// terminator read after Raw ("\n", "\r\n", or empty on an unterminated last line).
type Line struct {
	Number int
	Kind   LineKind
	Raw    string
	EOL    string
	Record Record
	Err    error
}

// SplitEOL separates a line read up to and including '\n' into its text and terminator.
func SplitEOL(text string) (string, string) {
	switch {
	case strings.HasSuffix(text, "\r\n"):
		return text[:len(text)-2], "\r\n"
	case strings.HasSuffix(text, "\n"):
		return text[:len(text)-1], "\n"
	default:
		return text, ""
	}
}

// ParseLine classifies raw. Comments start with '#', lines with leading whitespace are
// ignorable, and anything not shaped like an entry is malformed with Err set.
func ParseLine(number int, raw string, loc *time.Location) Line {
	line := Line{Number: number, Raw: raw}
	switch {
	case strings.TrimSpace(raw) == "":
		line.Kind = LineBlank
		return line
	case strings.HasPrefix(raw, "#"):
		line.Kind = LineComment
		return line
	case raw[0] == ' ' || raw[0] == '\t':
		line.Kind = LineComment
		return line
	}
	rec, err := parseRecord(raw, loc)
	if err != nil {
		line.Kind = LineMalformed
		line.Err = err
		return line
	}
	line.Kind = LineEntry
	line.Record = rec
	return line
}

func parseRecord(raw string, loc *time.Location) (Record, error) {
	if !entryPattern.MatchString(raw) {
		return Record{}, fmt.Errorf("%w: unexpected layout", apperrors.ErrMalformedLine)
	}
	fields := strings.Fields(raw)
	if len(fields) < 5 {
		return Record{}, fmt.Errorf("%w: missing time range", apperrors.ErrMalformedLine)
	}
	month, mday, year, times := fields[1], fields[2], fields[3], fields[4]

	date, err := time.ParseInLocation("Jan 02 2006", month+" "+mday+" "+year, loc)
	if err != nil {
		return Record{}, fmt.Errorf("%w: bad date: %v", apperrors.ErrMalformedLine, err)
	}
	startText, endText, _ := strings.Cut(times, "-")
	start, err := atClock(date, startText)
	if err != nil {
		return Record{}, err
	}
	rec := Record{Date: date, Start: start, Raw: raw}
	if len(fields) > 5 {
		rec.Category = strings.Join(fields[5:], " ")
	}
	if endText == "" {
		if rec.Category != "" {
			return Record{}, fmt.Errorf("%w: category on open entry", apperrors.ErrMalformedLine)
		}
		return rec, nil
	}
	end, err := atClock(date, endText)
	if err != nil {
		return Record{}, err
	}
	if end.Before(start) {
		return Record{}, fmt.Errorf("%w: end %s before start %s", apperrors.ErrMalformedLine, endText, startText)
	}
	rec.End = &end
	return rec, nil
}

// atClock places an "HH:MM" time on day.
func atClock(day time.Time, hhmm string) (time.Time, error) {
	hourText, minuteText, ok := strings.Cut(hhmm, ":")
	if !ok || len(hourText) != 2 || len(minuteText) != 2 {
		return time.Time{}, fmt.Errorf("%w: bad time %q", apperrors.ErrMalformedLine, hhmm)
	}
	hour, err := strconv.Atoi(hourText)
	if err != nil || hour < 0 || hour > 23 {
		return time.Time{}, fmt.Errorf("%w: bad hour %q", apperrors.ErrMalformedLine, hhmm)
	}
	minute, err := strconv.Atoi(minuteText)
	if err != nil || minute < 0 || minute > 59 {
		return time.Time{}, fmt.Errorf("%w: bad minute %q", apperrors.ErrMalformedLine, hhmm)
	}
	y, m, d := day.Date()
	return time.Date(y, m, d, hour, minute, 0, 0, day.Location()), nil
}

// FormatOpen renders the line appended on clock in.
func FormatOpen(at time.Time) string {
	return at.Format(OpenLayout)
}

// FormatClosed appends the end time and category to an open line.
func FormatClosed(openRaw string, at time.Time, category string) string {
	closed := strings.TrimRight(openRaw, " \t") + at.Format("15:04")
	if category != "" {
		closed += " " + category
	}
	return closed
}

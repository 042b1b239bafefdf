// Package waitlist parses rendered waiting-list table rows and locates the
// entry belonging to a configured enrollment timestamp.
package waitlist

import (
	"regexp"
	"strconv"
	"strings"
)

// Row is one data row of the waiting-list table.
type Row struct {
	// Position is the table-reported rank, starting at 1.
	Position int
	// Timestamp is the enrollment date/time exactly as rendered,
	// e.g. "Tue, 03 Feb 2026, 12:17:25 EST".
	Timestamp string
	// MaxPrefix and MinPrefix are the "/N" allocation-size fields.
	MaxPrefix string
	MinPrefix string
	// Raw keeps the full original row text for diagnostics.
	Raw string
}

// Rows look like:
//
//	473 Tue, 03 Feb 2026, 12:17:25 EST /22 /22
//
// The datetime phrase starts with a weekday abbreviation and runs
// non-greedily up to the two prefix tokens.
var rowPattern = regexp.MustCompile(
	`^\s*(\d+)\s+((?:Mon|Tue|Wed|Thu|Fri|Sat|Sun),.+?)\s+(/\d+)\s+(/\d+)\s*$`,
)

// ParseRow parses one row's visible text. Header rows, separators and
// anything else that does not match the five-field grammar report ok=false;
// a malformed row is never an error.
func ParseRow(line string) (Row, bool) {
	line = strings.TrimSpace(strings.ReplaceAll(line, "\n", " "))
	m := rowPattern.FindStringSubmatch(line)
	if m == nil {
		return Row{}, false
	}
	pos, err := strconv.Atoi(m[1])
	if err != nil || pos <= 0 {
		return Row{}, false
	}
	return Row{
		Position:  pos,
		Timestamp: strings.TrimSpace(m[2]),
		MaxPrefix: m[3],
		MinPrefix: m[4],
		Raw:       line,
	}, true
}

// ParseRows parses every row text in document order, silently dropping
// lines that are not data rows.
func ParseRows(lines []string) []Row {
	rows := make([]Row, 0, len(lines))
	for _, line := range lines {
		if row, ok := ParseRow(line); ok {
			rows = append(rows, row)
		}
	}
	return rows
}

// NormalizeTimestamp collapses consecutive whitespace to single spaces and
// trims the ends. Matching is exact string equality after this, with no
// date parsing or timezone conversion.
func NormalizeTimestamp(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// FindEntry returns the first row whose normalized timestamp equals the
// normalized target. First match wins if the table ever held duplicates.
func FindEntry(rows []Row, target string) (Row, bool) {
	want := NormalizeTimestamp(target)
	for _, row := range rows {
		if NormalizeTimestamp(row.Timestamp) == want {
			return row, true
		}
	}
	return Row{}, false
}

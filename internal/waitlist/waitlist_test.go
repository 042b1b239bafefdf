package waitlist

import (
	"fmt"
	"testing"
)

func TestParseRow(t *testing.T) {
	t.Parallel()

	row, ok := ParseRow("473 Tue, 03 Feb 2026, 12:17:25 EST /22 /22")
	if !ok {
		t.Fatal("expected row to parse")
	}
	if row.Position != 473 {
		t.Fatalf("position: expected 473 got %d", row.Position)
	}
	if row.Timestamp != "Tue, 03 Feb 2026, 12:17:25 EST" {
		t.Fatalf("unexpected timestamp %q", row.Timestamp)
	}
	if row.MaxPrefix != "/22" || row.MinPrefix != "/22" {
		t.Fatalf("unexpected prefixes %q %q", row.MaxPrefix, row.MinPrefix)
	}
}

func TestParseRowRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		position  int
		timestamp string
		max       string
		min       string
	}{
		{1, "Mon, 12 Jan 2026, 00:00:01 EST", "/24", "/24"},
		{473, "Tue, 03 Feb 2026, 12:17:25 EST", "/22", "/22"},
		{1200, "Sun, 28 Jun 2026, 23:59:59 EDT", "/22", "/24"},
	}

	for _, tt := range tests {
		line := fmt.Sprintf("%d %s %s %s", tt.position, tt.timestamp, tt.max, tt.min)
		row, ok := ParseRow(line)
		if !ok {
			t.Fatalf("expected %q to parse", line)
		}
		if row.Position != tt.position || row.Timestamp != tt.timestamp ||
			row.MaxPrefix != tt.max || row.MinPrefix != tt.min {
			t.Fatalf("round trip mismatch for %q: %+v", line, row)
		}
	}
}

func TestParseRowRejectsMalformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		line string
	}{
		{name: "empty", line: ""},
		{name: "header", line: "Position Date and Time Max Min"},
		{name: "separator", line: "---- ----"},
		{name: "non numeric position", line: "abc Tue, 03 Feb 2026, 12:17:25 EST /22 /22"},
		{name: "zero position", line: "0 Tue, 03 Feb 2026, 12:17:25 EST /22 /22"},
		{name: "bad weekday", line: "473 Xyz, 03 Feb 2026, 12:17:25 EST /22 /22"},
		{name: "missing min prefix", line: "473 Tue, 03 Feb 2026, 12:17:25 EST /22"},
		{name: "missing max prefix", line: "473 Tue, 03 Feb 2026, 12:17:25 EST"},
		{name: "trailing garbage", line: "473 Tue, 03 Feb 2026, 12:17:25 EST /22 /22 extra"},
		{name: "prefix without slash", line: "473 Tue, 03 Feb 2026, 12:17:25 EST 22 22"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := ParseRow(tt.line); ok {
				t.Fatalf("expected %q to be rejected", tt.line)
			}
		})
	}
}

func TestParseRowCollapsesNewlines(t *testing.T) {
	t.Parallel()

	row, ok := ParseRow("12\nWed, 14 Oct 2026, 08:30:00 EDT\n/22\n/24")
	if !ok {
		t.Fatal("expected multi-line cell text to parse")
	}
	if row.Position != 12 || row.MinPrefix != "/24" {
		t.Fatalf("unexpected row %+v", row)
	}
}

func TestParseRowsSkipsNonData(t *testing.T) {
	t.Parallel()

	rows := ParseRows([]string{
		"Position Date and Time Max Min",
		"1 Mon, 12 Jan 2026, 00:00:01 EST /24 /24",
		"not a row",
		"2 Tue, 03 Feb 2026, 12:17:25 EST /22 /22",
	})
	if len(rows) != 2 {
		t.Fatalf("expected 2 data rows, got %d", len(rows))
	}
	if rows[0].Position != 1 || rows[1].Position != 2 {
		t.Fatalf("unexpected ordering: %+v", rows)
	}
}

func TestFindEntry(t *testing.T) {
	t.Parallel()

	rows := []Row{
		{Position: 1, Timestamp: "Mon, 12 Jan 2026, 00:00:01 EST"},
		{Position: 473, Timestamp: "Tue, 03 Feb 2026, 12:17:25 EST"},
	}

	t.Run("exact match", func(t *testing.T) {
		row, ok := FindEntry(rows, "Tue, 03 Feb 2026, 12:17:25 EST")
		if !ok || row.Position != 473 {
			t.Fatalf("expected position 473, got %+v ok=%v", row, ok)
		}
	})

	t.Run("internal spacing is normalized", func(t *testing.T) {
		row, ok := FindEntry(rows, "  Tue,   03 Feb 2026,  12:17:25 EST ")
		if !ok || row.Position != 473 {
			t.Fatalf("expected position 473, got %+v ok=%v", row, ok)
		}
	})

	t.Run("any character difference misses", func(t *testing.T) {
		if _, ok := FindEntry(rows, "Tue, 03 Feb 2026, 12:17:26 EST"); ok {
			t.Fatal("expected no match for differing second")
		}
	})

	t.Run("first match wins", func(t *testing.T) {
		dup := append(rows, Row{Position: 999, Timestamp: "Tue, 03 Feb 2026, 12:17:25 EST"})
		row, ok := FindEntry(dup, "Tue, 03 Feb 2026, 12:17:25 EST")
		if !ok || row.Position != 473 {
			t.Fatalf("expected first duplicate (473), got %+v", row)
		}
	})
}

package core

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

var utcSundays = Calendar{WeekStart: time.Sunday, Location: time.UTC}

func dated(id int64, date string) Expense {
	d, err := ParseDate(date)
	if err != nil {
		panic(err)
	}
	return Expense{ID: id, Amount: decimal.NewFromInt(1), Category: "X", Date: d}
}

func ids(records []Expense) []int64 {
	out := make([]int64, 0, len(records))
	for _, e := range records {
		out = append(out, e.ID)
	}
	return out
}

func equalIDs(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestParseWindow(t *testing.T) {
	cases := map[string]Window{
		"all":     WindowAll,
		"week":    WindowWeek,
		"month":   WindowMonth,
		" Week ":  WindowWeek,
		"MONTH":   WindowMonth,
		"":        WindowAll,
		"year":    WindowAll,
		"weekly":  WindowAll,
		"garbage": WindowAll,
	}
	for in, want := range cases {
		if got := ParseWindow(in); got != want {
			t.Errorf("ParseWindow(%q) = %q, want %q", in, got, want)
		}
	}

	got := Windows()
	if len(got) != 3 || got[0] != "all" || got[1] != "week" || got[2] != "month" {
		t.Fatalf("unexpected windows %v", got)
	}
}

func TestCalendarWeek(t *testing.T) {
	tests := []struct {
		name      string
		cal       Calendar
		now       time.Time
		wantStart string
		wantEnd   string
	}{
		{
			name:      "midweek sunday start",
			cal:       utcSundays,
			now:       time.Date(2024, 1, 10, 18, 30, 0, 0, time.UTC), // Wednesday
			wantStart: "2024-01-07",
			wantEnd:   "2024-01-13",
		},
		{
			name:      "now is the first day",
			cal:       utcSundays,
			now:       time.Date(2024, 1, 7, 0, 0, 1, 0, time.UTC),
			wantStart: "2024-01-07",
			wantEnd:   "2024-01-13",
		},
		{
			name:      "now is the last day",
			cal:       utcSundays,
			now:       time.Date(2024, 1, 13, 23, 59, 59, 0, time.UTC),
			wantStart: "2024-01-07",
			wantEnd:   "2024-01-13",
		},
		{
			name:      "monday start",
			cal:       Calendar{WeekStart: time.Monday, Location: time.UTC},
			now:       time.Date(2024, 1, 7, 12, 0, 0, 0, time.UTC), // Sunday
			wantStart: "2024-01-01",
			wantEnd:   "2024-01-07",
		},
		{
			name:      "week spans a month boundary",
			cal:       utcSundays,
			now:       time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC), // Thursday
			wantStart: "2024-01-28",
			wantEnd:   "2024-02-03",
		},
		{
			name:      "location decides the day",
			cal:       Calendar{WeekStart: time.Sunday, Location: time.FixedZone("UTC-8", -8*60*60)},
			now:       time.Date(2024, 1, 7, 3, 0, 0, 0, time.UTC), // still Saturday 6th in UTC-8
			wantStart: "2023-12-31",
			wantEnd:   "2024-01-06",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := tt.cal.Week(tt.now)
			if start.String() != tt.wantStart || end.String() != tt.wantEnd {
				t.Errorf("Week() = [%s, %s], want [%s, %s]", start, end, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestFilterAllIsIdentity(t *testing.T) {
	records := []Expense{dated(3, "2024-01-15"), dated(1, "1999-05-01"), dated(2, "2030-12-31")}
	now := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)

	for _, w := range []Window{WindowAll, Window("bogus"), Window("")} {
		got := utcSundays.Filter(records, w, now)
		if !equalIDs(ids(got), []int64{3, 1, 2}) {
			t.Fatalf("window %q: got %v", w, ids(got))
		}
	}

	if got := utcSundays.Filter(nil, WindowAll, now); len(got) != 0 {
		t.Fatalf("expected empty result for empty input, got %v", got)
	}
}

func TestFilterDoesNotAliasInput(t *testing.T) {
	records := []Expense{dated(1, "2024-01-10")}
	got := utcSundays.Filter(records, WindowAll, time.Now())
	got[0].Category = "changed"
	if records[0].Category != "X" {
		t.Fatalf("filter result shares storage with its input")
	}
}

func TestFilterWeek(t *testing.T) {
	now := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC) // week is 2024-01-07..2024-01-13
	records := []Expense{
		dated(1, "2024-01-14"), // day after end
		dated(2, "2024-01-13"), // end of week
		dated(3, "2024-01-10"),
		dated(4, "2024-01-07"), // start of week
		dated(5, "2024-01-06"), // one day before start
		dated(6, "2023-01-10"), // same weekday a year earlier
	}

	got := utcSundays.Filter(records, WindowWeek, now)
	if !equalIDs(ids(got), []int64{2, 3, 4}) {
		t.Fatalf("got %v, want [2 3 4]", ids(got))
	}

	start, end := utcSundays.Week(now)
	for _, e := range records {
		in := utcSundays.Contains(WindowWeek, e.Date, now)
		inside := !e.Date.Before(start) && !e.Date.After(end)
		if in != inside {
			t.Fatalf("record %d: Contains=%v, bounds say %v", e.ID, in, inside)
		}
	}
}

func TestFilterMonth(t *testing.T) {
	now := time.Date(2024, 2, 15, 8, 0, 0, 0, time.UTC)
	records := []Expense{
		dated(1, "2024-02-29"),
		dated(2, "2024-02-01"),
		dated(3, "2024-01-31"),
		dated(4, "2023-02-15"), // same month, other year
		dated(5, "2024-03-01"),
	}

	got := utcSundays.Filter(records, WindowMonth, now)
	if !equalIDs(ids(got), []int64{1, 2}) {
		t.Fatalf("got %v, want [1 2]", ids(got))
	}
	for _, e := range got {
		if e.Date.Year() != 2024 || e.Date.Month() != time.February {
			t.Fatalf("record %d outside the month: %s", e.ID, e.Date)
		}
	}
}

func TestFilterPreservesOrder(t *testing.T) {
	now := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
	records := []Expense{dated(9, "2024-01-08"), dated(4, "2024-01-12"), dated(7, "2024-01-09")}
	got := utcSundays.Filter(records, WindowWeek, now)
	if !equalIDs(ids(got), []int64{9, 4, 7}) {
		t.Fatalf("order changed: %v", ids(got))
	}
}

package core

import (
	"strings"
	"time"
)

// Window names the time range a set of expenses is narrowed to.
type Window string

const (
	WindowAll   Window = "all"
	WindowWeek  Window = "week"
	WindowMonth Window = "month"
)

// Windows returns the recognized selector values in display order.
func Windows() []Window {
	return []Window{WindowAll, WindowWeek, WindowMonth}
}

// ParseWindow maps a selector to a Window. Unrecognized values become WindowAll
// so a view always has something to show.
func ParseWindow(s string) Window {
	w := Window(strings.ToLower(strings.TrimSpace(s)))
	if !w.IsValid() {
		return WindowAll
	}
	return w
}

// IsValid returns true if the window is one of the recognized selectors
func (w Window) IsValid() bool {
	switch w {
	case WindowAll, WindowWeek, WindowMonth:
		return true
	default:
		return false
	}
}

func (w Window) String() string {
	return string(w)
}

// Calendar fixes the conventions used to evaluate windows: the first day of
// the week and the time zone "now" is observed in.
type Calendar struct {
	WeekStart time.Weekday
	Location  *time.Location
}

// DefaultCalendar starts weeks on weekday index 0 (Sunday) in local time.
var DefaultCalendar = Calendar{WeekStart: time.Sunday, Location: time.Local}

func (c Calendar) location() *time.Location {
	if c.Location == nil {
		return time.Local
	}
	return c.Location
}

// Today returns the calendar day of now.
func (c Calendar) Today(now time.Time) Date {
	return DateOf(now, c.location())
}

// Week returns the inclusive bounds of the calendar week containing now.
func (c Calendar) Week(now time.Time) (start, end Date) {
	today := c.Today(now)
	back := (int(today.Weekday()) - int(c.WeekStart) + 7) % 7
	start = today.AddDays(-back)
	return start, start.AddDays(6)
}

// Contains reports whether a record dated d belongs to window w at instant now.
func (c Calendar) Contains(w Window, d Date, now time.Time) bool {
	return c.predicate(w, now)(d)
}

// predicate resolves the window bounds once for a given now.
func (c Calendar) predicate(w Window, now time.Time) func(Date) bool {
	switch w {
	case WindowWeek:
		start, end := c.Week(now)
		return func(d Date) bool {
			return !d.Before(start) && !d.After(end)
		}
	case WindowMonth:
		today := c.Today(now)
		return func(d Date) bool {
			return d.Year() == today.Year() && d.Month() == today.Month()
		}
	default:
		return func(Date) bool { return true }
	}
}

// Filter returns the records inside window w, preserving input order. now is
// read once by the caller and applies to every record of the call.
func (c Calendar) Filter(records []Expense, w Window, now time.Time) []Expense {
	keep := c.predicate(w, now)
	out := make([]Expense, 0, len(records))
	for _, e := range records {
		if keep(e.Date) {
			out = append(out, e)
		}
	}
	return out
}

// Filter applies DefaultCalendar.
func Filter(records []Expense, w Window, now time.Time) []Expense {
	return DefaultCalendar.Filter(records, w, now)
}

package core

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the ISO 8601 calendar date format used for storage and display.
const DateLayout = "2006-01-02"

type (
	// Date is a calendar day without a time component, held at midnight UTC.
	Date struct {
		time.Time
	}

	// Expense is a single logged spending event.
	Expense struct {
		ID       int64 // Assigned by storage on insert
		Amount   decimal.Decimal
		Category string
		Note     *string // nil when absent
		Date     Date
	}

	// Draft is the raw form input for a new expense.
	Draft struct {
		Amount   string
		Category string
		Note     string
	}
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrEmptyCategory = errors.New("empty category")
	ErrInvalidDate   = errors.New("invalid date")
)

// NewDate creates a new Date from year, month, day
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf returns the calendar day of t as observed in loc.
func DateOf(t time.Time, loc *time.Location) Date {
	if loc != nil {
		t = t.In(loc)
	}
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Date{Time: t}, nil
}

// AddDays returns the date n days later (or earlier for negative n).
func (d Date) AddDays(n int) Date {
	return Date{Time: d.Time.AddDate(0, 0, n)}
}

// Before reports whether d is an earlier day than o.
func (d Date) Before(o Date) bool { return d.Time.Before(o.Time) }

// After reports whether d is a later day than o.
func (d Date) After(o Date) bool { return d.Time.After(o.Time) }

// Equal reports whether d and o are the same day.
func (d Date) Equal(o Date) bool { return d.Time.Equal(o.Time) }

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

// Value stores the date as ISO text.
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, ErrInvalidDate
	}
	return d.String(), nil
}

// Scan reads ISO text (or a driver time) back into a Date.
func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case string:
		parsed, err := ParseDate(v)
		if err != nil {
			return err
		}
		*d = parsed
	case []byte:
		parsed, err := ParseDate(string(v))
		if err != nil {
			return err
		}
		*d = parsed
	case time.Time:
		*d = DateOf(v, time.UTC)
	default:
		return fmt.Errorf("%w: unsupported type %T", ErrInvalidDate, src)
	}
	return nil
}

// HasNote reports whether a note was recorded.
func (e Expense) HasNote() bool {
	return e.Note != nil
}

// NoteText returns the note or "" when absent.
func (e Expense) NoteText() string {
	if e.Note == nil {
		return ""
	}
	return *e.Note
}

func (e Expense) Validate() error {
	if !validAmount(e.Amount) {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(e.Category) == "" {
		return ErrEmptyCategory
	}
	if e.Date.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// Build validates the draft and turns it into an unsaved Expense dated today.
// Category and note are trimmed; a blank note becomes absent.
func (d Draft) Build(today Date) (Expense, error) {
	amount, err := ParseAmount(d.Amount)
	if err != nil {
		return Expense{}, err
	}

	category := strings.TrimSpace(d.Category)
	if category == "" {
		return Expense{}, ErrEmptyCategory
	}

	e := Expense{
		Amount:   amount,
		Category: category,
		Date:     today,
	}
	if note := strings.TrimSpace(d.Note); note != "" {
		e.Note = &note
	}

	if err := e.Validate(); err != nil {
		return Expense{}, err
	}
	return e, nil
}

// IsValidationError reports whether err was produced by draft or expense validation.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrEmptyCategory) ||
		errors.Is(err, ErrInvalidDate)
}

package storage

import (
	"database/sql"

	"github.com/shopspring/decimal"

	"spendlog/internal/core"
)

// Expense is a row of the expenses table.
type Expense struct {
	ID       int64
	Amount   decimal.Decimal
	Category string
	Note     sql.NullString
	Date     core.Date
}

// ToCore converts the row to the domain type.
func (e Expense) ToCore() core.Expense {
	out := core.Expense{
		ID:       e.ID,
		Amount:   e.Amount,
		Category: e.Category,
		Date:     e.Date,
	}
	if e.Note.Valid {
		note := e.Note.String
		out.Note = &note
	}
	return out
}

func nullNote(note *string) sql.NullString {
	if note == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *note, Valid: true}
}

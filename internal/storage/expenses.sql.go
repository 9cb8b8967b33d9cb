package storage

import (
	"context"
	"database/sql"

	"github.com/shopspring/decimal"

	"spendlog/internal/core"
)

const createExpense = `-- name: CreateExpense :one
INSERT INTO expenses (amount, category, note, date)
VALUES (?, ?, ?, ?)
RETURNING id, amount, category, note, date
`

type CreateExpenseParams struct {
	Amount   decimal.Decimal
	Category string
	Note     sql.NullString
	Date     core.Date
}

func (q *Queries) CreateExpense(ctx context.Context, arg CreateExpenseParams) (Expense, error) {
	row := q.db.QueryRowContext(ctx, createExpense,
		arg.Amount.InexactFloat64(),
		arg.Category,
		arg.Note,
		arg.Date,
	)
	var i Expense
	err := row.Scan(
		&i.ID,
		&i.Amount,
		&i.Category,
		&i.Note,
		&i.Date,
	)
	return i, err
}

const listExpenses = `-- name: ListExpenses :many
SELECT id, amount, category, note, date
FROM expenses
ORDER BY date DESC, id DESC
`

func (q *Queries) ListExpenses(ctx context.Context) ([]Expense, error) {
	rows, err := q.db.QueryContext(ctx, listExpenses)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Expense
	for rows.Next() {
		var i Expense
		if err := rows.Scan(
			&i.ID,
			&i.Amount,
			&i.Category,
			&i.Note,
			&i.Date,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getExpense = `-- name: GetExpense :one
SELECT id, amount, category, note, date
FROM expenses
WHERE id = ?
`

func (q *Queries) GetExpense(ctx context.Context, id int64) (Expense, error) {
	row := q.db.QueryRowContext(ctx, getExpense, id)
	var i Expense
	err := row.Scan(
		&i.ID,
		&i.Amount,
		&i.Category,
		&i.Note,
		&i.Date,
	)
	return i, err
}

const deleteExpense = `-- name: DeleteExpense :execrows
DELETE FROM expenses WHERE id = ?
`

func (q *Queries) DeleteExpense(ctx context.Context, id int64) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteExpense, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const countExpenses = `-- name: CountExpenses :one
SELECT COUNT(*) FROM expenses
`

func (q *Queries) CountExpenses(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countExpenses)
	var count int64
	err := row.Scan(&count)
	return count, err
}

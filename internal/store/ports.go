package store

import (
	"context"
	"errors"

	"spendlog/internal/core"
)

// ErrNotFound is returned when no expense has the requested id.
var ErrNotFound = errors.New("expense not found")

// Ports for the persistence collaborator.
type (
	// ExpenseWriter persists a validated expense and returns it with its assigned id.
	ExpenseWriter interface {
		Insert(ctx context.Context, e core.Expense) (core.Expense, error)
	}

	// ExpenseLister returns every expense ordered by date descending, then id descending.
	ExpenseLister interface {
		ListAll(ctx context.Context) ([]core.Expense, error)
	}

	// ExpenseDeleter removes an expense by id.
	ExpenseDeleter interface {
		Delete(ctx context.Context, id int64) error
	}

	Store interface {
		ExpenseWriter
		ExpenseLister
		ExpenseDeleter
	}
)

package services

import (
	"context"
	"fmt"
	"time"

	"spendlog/internal/core"
	applog "spendlog/internal/log"
	"spendlog/internal/store"
)

// ExpenseService turns raw input into stored expenses and back.
type ExpenseService struct {
	store    store.Store
	calendar core.Calendar
	now      func() time.Time
}

// Option configures an ExpenseService.
type Option func(*ExpenseService)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *ExpenseService) {
		if now != nil {
			s.now = now
		}
	}
}

func NewExpenseService(st store.Store, calendar core.Calendar, opts ...Option) *ExpenseService {
	s := &ExpenseService{
		store:    st,
		calendar: calendar,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Calendar returns the conventions windows are evaluated with.
func (s *ExpenseService) Calendar() core.Calendar {
	return s.calendar
}

// Now reads the service clock.
func (s *ExpenseService) Now() time.Time {
	return s.now()
}

// Create validates the draft, dates it today and stores it. Validation
// failures are returned as the core sentinel errors.
func (s *ExpenseService) Create(ctx context.Context, d core.Draft) (core.Expense, error) {
	e, err := d.Build(s.calendar.Today(s.now()))
	if err != nil {
		return core.Expense{}, err
	}

	saved, err := s.store.Insert(ctx, e)
	if err != nil {
		return core.Expense{}, fmt.Errorf("save expense: %w", err)
	}

	applog.FromContext(ctx).WithComponent(applog.ComponentExpense).DebugContext(ctx, "Expense created",
		applog.FieldExpenseID, saved.ID,
		applog.FieldCategory, saved.Category,
		applog.FieldDate, saved.Date.String(),
		applog.FieldHasNote, saved.HasNote())

	return saved, nil
}

// Delete removes an expense. Unknown ids yield store.ErrNotFound.
func (s *ExpenseService) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	return nil
}

// List returns every stored expense, newest first.
func (s *ExpenseService) List(ctx context.Context) ([]core.Expense, error) {
	records, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	applog.FromContext(ctx).WithComponent(applog.ComponentExpense).DebugContext(ctx, "Expenses listed",
		applog.FieldOperation, applog.OpList,
		applog.FieldCount, len(records))
	return records, nil
}

package services

import (
	"context"
	"sync"
	"time"

	"spendlog/internal/core"
	applog "spendlog/internal/log"
)

// Week is the inclusive range of the calendar week a view was computed in.
type Week struct {
	Start core.Date
	End   core.Date
}

// View is everything a screen needs, derived from scratch for one instant.
type View struct {
	Window   core.Window
	Now      time.Time
	Week     Week
	Expenses []core.Expense
	Summary  core.Summary
	Shares   []core.Share
	HasData  bool
}

// Ledger holds the screen state: the full record set as last loaded and the
// selected window. It never caches derived values.
type Ledger struct {
	mu      sync.Mutex
	service *ExpenseService
	logger  *applog.Logger
	records []core.Expense
	window  core.Window
}

func NewLedger(service *ExpenseService, logger *applog.Logger) *Ledger {
	if logger == nil {
		logger = applog.FromContext(context.Background())
	}
	return &Ledger{
		service: service,
		logger:  logger.WithComponent(applog.ComponentLedger),
		window:  core.WindowAll,
	}
}

// Reload replaces the in-memory record set with the store contents.
func (l *Ledger) Reload(ctx context.Context) error {
	records, err := l.service.List(ctx)
	if err != nil {
		return err
	}

	l.mu.Lock()
	l.records = records
	l.mu.Unlock()

	l.logger.DebugContext(ctx, "Ledger reloaded",
		applog.FieldOperation, applog.OpReload,
		applog.FieldCount, len(records))
	return nil
}

// Add stores a new expense and reloads. A draft that fails validation is
// dropped without error and reported as not added.
func (l *Ledger) Add(ctx context.Context, d core.Draft) (bool, error) {
	saved, err := l.service.Create(ctx, d)
	if core.IsValidationError(err) {
		l.logger.DebugContext(ctx, "Expense rejected",
			applog.FieldOperation, applog.OpValidate,
			applog.FieldReason, err.Error())
		return false, nil
	}
	if err != nil {
		return false, err
	}

	l.logger.InfoContext(ctx, "Expense added",
		applog.NewFields().
			WithExpense(saved.ID, saved.Amount, saved.Category).
			WithOperation(applog.OpCreate).
			ToSlice()...)

	return true, l.Reload(ctx)
}

// Delete removes an expense by id and reloads.
func (l *Ledger) Delete(ctx context.Context, id int64) error {
	if err := l.service.Delete(ctx, id); err != nil {
		return err
	}
	l.logger.InfoContext(ctx, "Expense deleted",
		applog.FieldOperation, applog.OpDelete,
		applog.FieldExpenseID, id)
	return l.Reload(ctx)
}

// SetWindow selects the window for subsequent snapshots.
func (l *Ledger) SetWindow(w core.Window) {
	if !w.IsValid() {
		w = core.WindowAll
	}
	l.mu.Lock()
	l.window = w
	l.mu.Unlock()
}

func (l *Ledger) Window() core.Window {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.window
}

// Records returns a copy of the full, unfiltered record set.
func (l *Ledger) Records() []core.Expense {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]core.Expense(nil), l.records...)
}

// Snapshot filters and aggregates the current records for the current window.
// The clock is read once.
func (l *Ledger) Snapshot() View {
	l.mu.Lock()
	records := l.records
	window := l.window
	l.mu.Unlock()

	now := l.service.Now()
	cal := l.service.Calendar()

	filtered := cal.Filter(records, window, now)
	summary := core.Aggregate(filtered)
	shares, hasData := summary.Shares()
	start, end := cal.Week(now)

	return View{
		Window:   window,
		Now:      now,
		Week:     Week{Start: start, End: end},
		Expenses: filtered,
		Summary:  summary,
		Shares:   shares,
		HasData:  hasData,
	}
}

package services

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"spendlog/internal/core"
	applog "spendlog/internal/log"
	"spendlog/internal/store"
	"spendlog/internal/store/memory"
)

var utc = core.Calendar{WeekStart: time.Sunday, Location: time.UTC}

// Wednesday 2024-01-17, week Sunday 14 .. Saturday 20.
var fixedNow = time.Date(2024, time.January, 17, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

type failingStore struct {
	store.Store
	err error
}

func (f failingStore) Insert(context.Context, core.Expense) (core.Expense, error) {
	return core.Expense{}, f.err
}

func (f failingStore) ListAll(context.Context) ([]core.Expense, error) {
	return nil, f.err
}

func TestExpenseService_Create(t *testing.T) {
	st := memory.New()
	service := NewExpenseService(st, utc, WithClock(fixedClock))
	ctx := context.Background()

	saved, err := service.Create(ctx, core.Draft{Amount: "12,50", Category: "  Food ", Note: " lunch "})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if saved.ID != 1 {
		t.Fatalf("id = %d", saved.ID)
	}
	if !saved.Amount.Equal(decimal.RequireFromString("12.5")) || saved.Category != "Food" || saved.NoteText() != "lunch" {
		t.Fatalf("unexpected expense %+v", saved)
	}
	if saved.Date.String() != "2024-01-17" {
		t.Fatalf("date = %s, want today", saved.Date)
	}
	if st.Len() != 1 {
		t.Fatalf("store has %d rows", st.Len())
	}
}

func TestExpenseService_CreateUsesCalendarLocation(t *testing.T) {
	tokyo := time.FixedZone("UTC+9", 9*60*60)
	cal := core.Calendar{WeekStart: time.Sunday, Location: tokyo}
	late := time.Date(2024, time.January, 31, 20, 0, 0, 0, time.UTC)

	service := NewExpenseService(memory.New(), cal, WithClock(func() time.Time { return late }))
	saved, err := service.Create(context.Background(), core.Draft{Amount: "1", Category: "Taxi"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if saved.Date.String() != "2024-02-01" {
		t.Fatalf("date = %s, want 2024-02-01", saved.Date)
	}
}

func TestExpenseService_CreateRejectsInvalid(t *testing.T) {
	tests := []struct {
		name  string
		draft core.Draft
		want  error
	}{
		{"empty amount", core.Draft{Amount: "", Category: "Food"}, core.ErrInvalidAmount},
		{"zero amount", core.Draft{Amount: "0", Category: "Food"}, core.ErrInvalidAmount},
		{"negative amount", core.Draft{Amount: "-3", Category: "Food"}, core.ErrInvalidAmount},
		{"text amount", core.Draft{Amount: "abc", Category: "Food"}, core.ErrInvalidAmount},
		{"blank category", core.Draft{Amount: "3", Category: "   "}, core.ErrEmptyCategory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := memory.New()
			service := NewExpenseService(st, utc, WithClock(fixedClock))
			_, err := service.Create(context.Background(), tt.draft)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			if st.Len() != 0 {
				t.Fatal("invalid draft must not be stored")
			}
		})
	}
}

func TestExpenseService_StorageErrors(t *testing.T) {
	boom := errors.New("disk full")
	service := NewExpenseService(failingStore{err: boom}, utc, WithClock(fixedClock))

	if _, err := service.Create(context.Background(), core.Draft{Amount: "1", Category: "x"}); !errors.Is(err, boom) {
		t.Fatalf("Create err = %v", err)
	}
	if _, err := service.List(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("List err = %v", err)
	}
}

func TestExpenseService_Delete(t *testing.T) {
	st := memory.New(core.Expense{ID: 4, Amount: decimal.NewFromInt(2), Category: "Bus", Date: core.NewDate(2024, 1, 2)})
	service := NewExpenseService(st, utc)

	if err := service.Delete(context.Background(), 4); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := service.Delete(context.Background(), 4); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("second Delete err = %v", err)
	}
}

func TestExpenseService_LogsThroughContextLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := applog.New(applog.Config{Level: slog.LevelDebug, Output: &buf})
	ctx := applog.NewContext(context.Background(), logger)
	service := NewExpenseService(memory.New(), utc, WithClock(fixedClock))

	if _, err := service.Create(ctx, core.Draft{Amount: "3", Category: "Tea", Note: "green"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := service.List(ctx); err != nil {
		t.Fatalf("List: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"component=expense", "date=2024-01-17", "has_note=true", "operation=list", "count=1"} {
		if !strings.Contains(out, want) {
			t.Fatalf("log missing %q: %q", want, out)
		}
	}
}

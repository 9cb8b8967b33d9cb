package log

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestNewTextAddsComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelInfo, Component: ComponentStorage, Output: &buf})

	logger.Info("Expense saved", FieldExpenseID, int64(7))
	logger.Debug("hidden")

	out := buf.String()
	if !strings.Contains(out, "component=storage") || !strings.Contains(out, "id=7") {
		t.Fatalf("missing fields in %q", out)
	}
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug record should be filtered at info level: %q", out)
	}
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelDebug, Format: "json", Output: &buf}).WithComponent(ComponentLedger)

	fields := NewFields().
		WithExpense(3, decimal.RequireFromString("12.50"), "Food").
		WithWindow("week").
		WithError(errors.New("boom"))
	logger.DebugContext(context.Background(), "reloaded", fields.ToSlice()...)

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("not json: %v (%q)", err, buf.String())
	}
	want := map[string]any{
		FieldComponent: ComponentLedger,
		FieldAmount:    "12.5",
		FieldCategory:  "Food",
		FieldWindow:    "week",
		FieldError:     "boom",
	}
	for k, v := range want {
		if record[k] != v {
			t.Fatalf("%s = %v, want %v", k, record[k], v)
		}
	}
}

func TestWithExpenseOmitsZeroID(t *testing.T) {
	f := NewFields().WithExpense(0, decimal.NewFromInt(1), "Rent")
	if _, ok := f[FieldExpenseID]; ok {
		t.Fatal("zero id should be omitted")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{" warn ", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"loud", slog.LevelInfo, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseLevel(%q) err = %v", tt.in, err)
		}
		if !tt.wantErr && got != tt.want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFromContext(t *testing.T) {
	logger := New(Config{Component: ComponentCLI, Output: &bytes.Buffer{}})
	ctx := NewContext(context.Background(), logger)
	if got := FromContext(ctx); got != logger {
		t.Fatal("expected stored logger")
	}
	if got := FromContext(context.Background()); got == nil || got.Component() != ComponentApp {
		t.Fatalf("fallback logger = %+v", got)
	}
}

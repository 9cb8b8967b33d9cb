package core

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  string
		out string
		ok  bool
	}{
		{"1", "1", true},
		{"12.50", "12.5", true},
		{"12,50", "12.5", true},
		{"0.01", "0.01", true},
		{" 2.50 ", "2.5", true},
		{"3.14159", "3.14159", true},
		{"-1", "", false},
		{"+1", "", false},
		{"0", "", false},
		{"0.00", "", false},
		{"abc", "", false},
		{"1e3", "", false},
		{"1.2.3", "", false},
		{".", "", false},
		{"", "", false},
		{"1" + strings.Repeat("0", 400), "", false},
		{"0." + strings.Repeat("0", 400) + "1", "", false},
		{"1" + strings.Repeat("0", 300), "1" + strings.Repeat("0", 300), true},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.ok {
			if err != nil || !got.Equal(decimal.RequireFromString(tc.out)) {
				t.Fatalf("%q expected %s, got %s (err=%v)", tc.in, tc.out, got, err)
			}
		} else if err == nil {
			t.Fatalf("%q expected error", tc.in)
		}
	}
}

func TestFormatAmount(t *testing.T) {
	cases := map[string]string{
		"42.5":    "42.50",
		"30":      "30.00",
		"0":       "0.00",
		"1.005":   "1.01",
		"12.3449": "12.34",
	}
	for in, want := range cases {
		if got := FormatAmount(decimal.RequireFromString(in)); got != want {
			t.Errorf("FormatAmount(%s) = %q, want %q", in, got, want)
		}
	}
}

func TestPercent(t *testing.T) {
	p, ok := Percent(decimal.RequireFromString("12.50"), decimal.RequireFromString("42.50"))
	if !ok {
		t.Fatalf("expected ok for non-zero total")
	}
	if got := FormatPercent(p); got != "29.4%" {
		t.Fatalf("got %q, want 29.4%%", got)
	}

	if _, ok := Percent(decimal.NewFromInt(5), decimal.Zero); ok {
		t.Fatalf("expected no percentage for zero total")
	}
}

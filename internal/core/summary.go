package core

import "github.com/shopspring/decimal"

// CategoryAmount represents an amount aggregated by category name.
type CategoryAmount struct {
	Name   string
	Amount decimal.Decimal
}

// CategoryTotals maps category labels to summed amounts and remembers the
// order in which categories were first seen.
type CategoryTotals struct {
	order []string
	sums  map[string]decimal.Decimal
}

// Add accumulates amount under the exact category label.
func (t *CategoryTotals) Add(category string, amount decimal.Decimal) {
	if t.sums == nil {
		t.sums = make(map[string]decimal.Decimal)
	}
	sum, seen := t.sums[category]
	if !seen {
		t.order = append(t.order, category)
	}
	t.sums[category] = sum.Add(amount)
}

// Get returns the total for a category and whether it is present.
func (t CategoryTotals) Get(category string) (decimal.Decimal, bool) {
	sum, ok := t.sums[category]
	return sum, ok
}

// Len returns the number of distinct categories.
func (t CategoryTotals) Len() int {
	return len(t.order)
}

// Categories returns the labels in insertion order.
func (t CategoryTotals) Categories() []string {
	return append([]string(nil), t.order...)
}

// Entries returns the totals in insertion order.
func (t CategoryTotals) Entries() []CategoryAmount {
	out := make([]CategoryAmount, 0, len(t.order))
	for _, name := range t.order {
		out = append(out, CategoryAmount{Name: name, Amount: t.sums[name]})
	}
	return out
}

// Summary is the reduction of a filtered record set.
type Summary struct {
	Total      decimal.Decimal
	ByCategory CategoryTotals
	Count      int
}

// Share is one category's slice of the total.
type Share struct {
	Category string
	Amount   decimal.Decimal
	Percent  decimal.Decimal
}

// Aggregate sums the records left to right, overall and per category.
func Aggregate(records []Expense) Summary {
	s := Summary{Total: decimal.Zero}
	for _, e := range records {
		s.Total = s.Total.Add(e.Amount)
		s.ByCategory.Add(e.Category, e.Amount)
		s.Count++
	}
	return s
}

// HasData reports whether there is any spending to break down.
func (s Summary) HasData() bool {
	return !s.Total.IsZero()
}

// Shares returns each category's percentage of the total in insertion order.
// With a zero total it returns nil, false.
func (s Summary) Shares() ([]Share, bool) {
	if !s.HasData() {
		return nil, false
	}
	entries := s.ByCategory.Entries()
	out := make([]Share, 0, len(entries))
	for _, ca := range entries {
		pct, _ := Percent(ca.Amount, s.Total)
		out = append(out, Share{Category: ca.Name, Amount: ca.Amount, Percent: pct})
	}
	return out, true
}

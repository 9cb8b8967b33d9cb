package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"spendlog/internal/core"
	"spendlog/internal/store"
)

// Store keeps expenses in process. Ids are assigned monotonically and never reused.
type Store struct {
	mu     sync.Mutex
	lastID int64
	items  []core.Expense
}

func New(seed ...core.Expense) *Store {
	s := &Store{}
	for _, e := range seed {
		if e.ID > s.lastID {
			s.lastID = e.ID
		}
	}
	for _, e := range seed {
		if e.ID == 0 {
			s.lastID++
			e.ID = s.lastID
		}
		s.items = append(s.items, e)
	}
	return s
}

// Insert stores the expense and assigns the next id.
func (s *Store) Insert(_ context.Context, e core.Expense) (core.Expense, error) {
	if err := e.Validate(); err != nil {
		return core.Expense{}, fmt.Errorf("insert expense: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastID++
	e.ID = s.lastID
	s.items = append(s.items, e)
	return e, nil
}

// ListAll returns a copy of every expense, newest date first, then highest id.
func (s *Store) ListAll(_ context.Context) ([]core.Expense, error) {
	s.mu.Lock()
	out := append([]core.Expense(nil), s.items...)
	s.mu.Unlock()

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

// Delete removes the expense with the given id.
func (s *Store) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.items {
		if e.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("delete expense %d: %w", id, store.ErrNotFound)
}

// Len returns the number of stored expenses.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

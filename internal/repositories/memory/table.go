// Package memory holds map-backed repositories used when no database is
// configured and by service tests.
package memory

import (
	"fmt"
	"sort"
	"sync"

	"github.com/SscSPs/fintrack_app/internal/apperrors"
	"github.com/SscSPs/fintrack_app/internal/core/domain"
	portsrepo "github.com/SscSPs/fintrack_app/internal/core/ports/repositories"
)

// table is a user-scoped map of records keyed by ID.
type table[T domain.LineItemSource] struct {
	mu   sync.RWMutex
	name string
	rows map[string]T
	id   func(T) string
}

func newTable[T domain.LineItemSource](name string, id func(T) string) *table[T] {
	return &table[T]{name: name, rows: make(map[string]T), id: id}
}

func (t *table[T]) notFound(id string) error {
	return fmt.Errorf("%w: %s %s", apperrors.ErrNotFound, t.name, id)
}

func (t *table[T]) insert(row T) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	id := t.id(row)
	if _, exists := t.rows[id]; exists {
		return fmt.Errorf("%w: %s %s", apperrors.ErrDuplicate, t.name, id)
	}
	t.rows[id] = row
	return nil
}

func (t *table[T]) update(row T) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	id := t.id(row)
	existing, ok := t.rows[id]
	if !ok || existing.LineItem().UserID != row.LineItem().UserID {
		return t.notFound(id)
	}
	t.rows[id] = row
	return nil
}

func (t *table[T]) find(userID, id string) (*T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	row, ok := t.rows[id]
	if !ok || row.LineItem().UserID != userID {
		return nil, t.notFound(id)
	}
	return &row, nil
}

func (t *table[T]) delete(userID, id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	row, ok := t.rows[id]
	if !ok || row.LineItem().UserID != userID {
		return t.notFound(id)
	}
	delete(t.rows, id)
	return nil
}

// list returns matching rows newest first, then applies offset and limit.
func (t *table[T]) list(filter portsrepo.RecordFilter) []T {
	t.mu.RLock()
	out := make([]T, 0, len(t.rows))
	for _, row := range t.rows {
		if filter.Matches(row.LineItem()) {
			out = append(out, row)
		}
	}
	t.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		di, dj := out[i].LineItem().Date, out[j].LineItem().Date
		if di.Equal(dj) {
			return t.id(out[i]) < t.id(out[j])
		}
		return di.After(dj)
	})
	return paginate(out, filter.Limit, filter.Offset)
}

func paginate[T any](rows []T, limit, offset int) []T {
	if offset > 0 {
		if offset >= len(rows) {
			return []T{}
		}
		rows = rows[offset:]
	}
	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}
	return rows
}

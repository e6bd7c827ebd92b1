package store

import (
	"context"
	"sync"
	"time"

	"github.com/holasaidlola/shop-analytics/internal/domain"
)

// Store holds the current order table. The table is replaced whole on every
// refresh and never mutated in place, so Snapshot can hand out the live
// reference: a concurrent refresh swaps the slice header under the lock and
// in-flight aggregations keep reading their frozen copy.
type Store interface {
	Replace(ctx context.Context, table domain.OrderTable, fetchedAt time.Time)
	Snapshot(ctx context.Context) (domain.OrderTable, time.Time)
}

type store struct {
	mu        sync.RWMutex
	table     domain.OrderTable
	fetchedAt time.Time
}

func NewStore() Store {
	return &store{}
}

func (s *store) Replace(_ context.Context, table domain.OrderTable, fetchedAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.table = table
	s.fetchedAt = fetchedAt
}

func (s *store) Snapshot(_ context.Context) (domain.OrderTable, time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.table, s.fetchedAt
}

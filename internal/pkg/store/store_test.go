package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/holasaidlola/shop-analytics/internal/domain"
)

func TestReplaceAndSnapshot(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	table, fetchedAt := s.Snapshot(ctx)
	assert.Empty(t, table)
	assert.True(t, fetchedAt.IsZero())

	first := domain.OrderTable{{ID: 1}, {ID: 2}}
	at := time.Now()
	s.Replace(ctx, first, at)

	table, fetchedAt = s.Snapshot(ctx)
	assert.Len(t, table, 2)
	assert.Equal(t, at, fetchedAt)

	// a snapshot taken before a replace keeps reading the old table
	held, _ := s.Snapshot(ctx)
	s.Replace(ctx, domain.OrderTable{{ID: 3}}, time.Now())
	assert.Len(t, held, 2)

	table, _ = s.Snapshot(ctx)
	assert.Len(t, table, 1)
	assert.EqualValues(t, 3, table[0].ID)
}

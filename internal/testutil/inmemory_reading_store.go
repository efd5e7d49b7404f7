package testutil

import (
	"context"
	"sort"
	"sync"

	"github.com/flexprice/aggbot/internal/aggregation"
	"github.com/flexprice/aggbot/internal/domain/reading"
)

// InMemoryReadingStore is a reading.Repository that groups in Go. It mirrors
// what the Mongo pipeline does: inclusive range match, truncation grouping,
// sum of value, rows only for non empty buckets.
type InMemoryReadingStore struct {
	mu       sync.RWMutex
	readings []*reading.Reading
	err      error
	queries  []*aggregation.Query
}

func NewInMemoryReadingStore() *InMemoryReadingStore {
	return &InMemoryReadingStore{}
}

// Insert adds readings to the store
func (s *InMemoryReadingStore) Insert(readings ...*reading.Reading) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.readings = append(s.readings, readings...)
}

// FailWith makes every following AggregateBuckets call return err
func (s *InMemoryReadingStore) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// Queries returns every query the store has received
func (s *InMemoryReadingStore) Queries() []*aggregation.Query {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*aggregation.Query(nil), s.queries...)
}

func (s *InMemoryReadingStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.readings = nil
	s.queries = nil
	s.err = nil
}

func (s *InMemoryReadingStore) AggregateBuckets(ctx context.Context, query *aggregation.Query) ([]*aggregation.BucketTotal, error) {
	s.mu.Lock()
	s.queries = append(s.queries, query)
	s.mu.Unlock()

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.err != nil {
		return nil, s.err
	}

	totals := make(map[aggregation.BucketKey]float64)
	for _, r := range s.readings {
		if r.DT.Before(query.From) || r.DT.After(query.To) {
			continue
		}
		totals[aggregation.KeyOf(r.DT, query.Granularity)] += r.Value
	}

	rows := make([]*aggregation.BucketTotal, 0, len(totals))
	for key, total := range totals {
		rows = append(rows, &aggregation.BucketTotal{Key: key, Total: total})
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Key.Time().Before(rows[j].Key.Time())
	})
	return rows, nil
}

var _ reading.Repository = (*InMemoryReadingStore)(nil)

package aggregation

import (
	"time"

	"github.com/flexprice/aggbot/internal/types"
)

// Skeleton is an insertion ordered mapping from bucket key to value.
// Iteration order is chronological and is what the response is built from,
// so it must never be replaced by plain map iteration.
type Skeleton struct {
	granularity types.Granularity
	keys        []BucketKey
	values      []float64
	index       map[BucketKey]int
}

// NewSkeleton builds a zero filled skeleton from generated bucket instants.
// Instants falling into an already present bucket are skipped.
func NewSkeleton(g types.Granularity, instants []time.Time) *Skeleton {
	s := &Skeleton{
		granularity: g,
		keys:        make([]BucketKey, 0, len(instants)),
		values:      make([]float64, 0, len(instants)),
		index:       make(map[BucketKey]int, len(instants)),
	}
	for _, t := range instants {
		key := KeyOf(t, g)
		if _, ok := s.index[key]; ok {
			continue
		}
		s.index[key] = len(s.keys)
		s.keys = append(s.keys, key)
		s.values = append(s.values, 0)
	}
	return s
}

func (s *Skeleton) Granularity() types.Granularity {
	return s.granularity
}

func (s *Skeleton) Len() int {
	return len(s.keys)
}

// Keys returns the bucket keys in order
func (s *Skeleton) Keys() []BucketKey {
	return append([]BucketKey(nil), s.keys...)
}

// Values returns the bucket values in key order
func (s *Skeleton) Values() []float64 {
	return append([]float64(nil), s.values...)
}

func (s *Skeleton) Has(key BucketKey) bool {
	_, ok := s.index[key]
	return ok
}

// Get returns the value of a bucket, false when the key is outside the range
func (s *Skeleton) Get(key BucketKey) (float64, bool) {
	i, ok := s.index[key]
	if !ok {
		return 0, false
	}
	return s.values[i], true
}

// Each calls fn for every bucket in order
func (s *Skeleton) Each(fn func(key BucketKey, value float64)) {
	for i, key := range s.keys {
		fn(key, s.values[i])
	}
}

// set overwrites an existing bucket and never adds one
func (s *Skeleton) set(key BucketKey, value float64) bool {
	i, ok := s.index[key]
	if !ok {
		return false
	}
	s.values[i] = value
	return true
}

func (s *Skeleton) clone() *Skeleton {
	c := &Skeleton{
		granularity: s.granularity,
		keys:        s.Keys(),
		values:      s.Values(),
		index:       make(map[BucketKey]int, len(s.index)),
	}
	for k, i := range s.index {
		c.index[k] = i
	}
	return c
}

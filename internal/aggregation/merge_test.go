package aggregation

import (
	"testing"
	"time"

	"github.com/flexprice/aggbot/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSkeleton(t *testing.T) {
	s := NewSkeleton(types.GranularityMonth, GenerateBuckets(date(2024, 1, 31, 0), date(2024, 3, 31, 0), types.GranularityMonth))

	require.Equal(t, 3, s.Len())
	assert.Equal(t, []BucketKey{
		{Year: 2024, Month: time.January, Day: 1},
		{Year: 2024, Month: time.February, Day: 1},
		{Year: 2024, Month: time.March, Day: 1},
	}, s.Keys())
	assert.Equal(t, []float64{0, 0, 0}, s.Values())
}

func TestNewSkeleton_CollapsesSameBucket(t *testing.T) {
	instants := []time.Time{date(2024, 1, 1, 10), time.Date(2024, 1, 1, 10, 30, 0, 0, time.UTC), date(2024, 1, 1, 11)}
	s := NewSkeleton(types.GranularityHour, instants)
	assert.Equal(t, 2, s.Len())
}

func TestMerge(t *testing.T) {
	skeleton := NewSkeleton(types.GranularityDay, GenerateBuckets(date(2024, 1, 1, 0), date(2024, 1, 3, 0), types.GranularityDay))

	tests := []struct {
		name string
		rows []*BucketTotal
		want []float64
	}{
		{
			name: "no rows keeps zeros",
			rows: nil,
			want: []float64{0, 0, 0},
		},
		{
			name: "sparse row",
			rows: []*BucketTotal{{Key: NewBucketKey(types.GranularityDay, 2024, 1, 1, 0), Total: 5}},
			want: []float64{5, 0, 0},
		},
		{
			name: "unordered rows",
			rows: []*BucketTotal{
				{Key: NewBucketKey(types.GranularityDay, 2024, 1, 3, 0), Total: 7},
				{Key: NewBucketKey(types.GranularityDay, 2024, 1, 1, 0), Total: 1.5},
			},
			want: []float64{1.5, 0, 7},
		},
		{
			name: "out of range rows are ignored",
			rows: []*BucketTotal{
				{Key: NewBucketKey(types.GranularityDay, 2023, 12, 31, 0), Total: 100},
				{Key: NewBucketKey(types.GranularityDay, 2024, 1, 2, 0), Total: 3},
				{Key: NewBucketKey(types.GranularityDay, 2024, 1, 4, 0), Total: 100},
				nil,
			},
			want: []float64{0, 3, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			merged := Merge(skeleton, tt.rows)
			assert.Equal(t, skeleton.Keys(), merged.Keys())
			assert.Equal(t, tt.want, merged.Values())
		})
	}

	// the skeleton itself is never written to
	assert.Equal(t, []float64{0, 0, 0}, skeleton.Values())
}

func TestMerge_GetByKey(t *testing.T) {
	skeleton := NewSkeleton(types.GranularityHour, GenerateBuckets(date(2024, 1, 1, 0), date(2024, 1, 1, 3), types.GranularityHour))
	merged := Merge(skeleton, []*BucketTotal{
		{Key: NewBucketKey(types.GranularityHour, 2024, 1, 1, 2), Total: 4.25},
	})

	value, ok := merged.Get(NewBucketKey(types.GranularityHour, 2024, 1, 1, 2))
	require.True(t, ok)
	assert.Equal(t, 4.25, value)

	value, ok = merged.Get(NewBucketKey(types.GranularityHour, 2024, 1, 1, 1))
	require.True(t, ok)
	assert.Zero(t, value)

	value, ok = merged.Get(NewBucketKey(types.GranularityHour, 2024, 1, 1, 5))
	assert.False(t, ok)
	assert.Zero(t, value)
	assert.False(t, merged.Has(NewBucketKey(types.GranularityHour, 2024, 1, 1, 5)))
}

func TestUnmatched(t *testing.T) {
	skeleton := NewSkeleton(types.GranularityHour, GenerateBuckets(date(2024, 1, 1, 0), date(2024, 1, 1, 2), types.GranularityHour))
	outside := &BucketTotal{Key: NewBucketKey(types.GranularityHour, 2024, 1, 1, 3), Total: 1}
	rows := []*BucketTotal{
		{Key: NewBucketKey(types.GranularityHour, 2024, 1, 1, 1), Total: 1},
		outside,
	}

	assert.Equal(t, []*BucketTotal{outside}, Unmatched(skeleton, rows))
}

func TestNewBucketKey_NormalizesUnusedFields(t *testing.T) {
	assert.Equal(t, KeyOf(date(2024, 2, 17, 13), types.GranularityMonth), NewBucketKey(types.GranularityMonth, 2024, 2, 0, 0))
	assert.Equal(t, KeyOf(date(2024, 2, 17, 13), types.GranularityDay), NewBucketKey(types.GranularityDay, 2024, 2, 17, 0))
	assert.Equal(t, KeyOf(date(2024, 2, 17, 13), types.GranularityHour), NewBucketKey(types.GranularityHour, 2024, 2, 17, 13))
}

package aggregation

import (
	"testing"
	"time"

	"github.com/flexprice/aggbot/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestSerialize(t *testing.T) {
	skeleton := NewSkeleton(types.GranularityDay, GenerateBuckets(date(2024, 1, 1, 0), date(2024, 1, 3, 0), types.GranularityDay))
	merged := Merge(skeleton, []*BucketTotal{{Key: NewBucketKey(types.GranularityDay, 2024, 1, 1, 0), Total: 5}})

	resp := Serialize(merged)

	assert.Equal(t, []string{"2024-01-01T00:00:00", "2024-01-02T00:00:00", "2024-01-03T00:00:00"}, resp.Labels)
	assert.Equal(t, []float64{5, 0, 0}, resp.Dataset)
}

func TestSerialize_Empty(t *testing.T) {
	resp := Serialize(NewSkeleton(types.GranularityDay, nil))
	assert.NotNil(t, resp.Labels)
	assert.NotNil(t, resp.Dataset)
	assert.Empty(t, resp.Labels)
}

func TestSerialize_HourLabelIsTruncated(t *testing.T) {
	start := date(2024, 5, 6, 7).Add(42*time.Minute + 13*time.Second)
	resp := Serialize(Skeletonize(hourPipeline, start, start))
	assert.Equal(t, []string{"2024-05-06T07:00:00"}, resp.Labels)
	assert.Equal(t, []float64{0}, resp.Dataset)
}

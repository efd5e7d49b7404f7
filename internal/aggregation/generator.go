package aggregation

import (
	"time"

	"github.com/flexprice/aggbot/internal/types"
)

// GenerateBuckets steps from start by one unit of g and returns every
// instant up to and including end. The result is strictly increasing and
// empty when start is after end or g is not a supported granularity.
func GenerateBuckets(start, end time.Time, g types.Granularity) []time.Time {
	if g.Validate() != nil || start.After(end) {
		return []time.Time{}
	}

	var buckets []time.Time
	for current := start; !current.After(end); current = g.Next(current) {
		buckets = append(buckets, current)
	}
	return buckets
}

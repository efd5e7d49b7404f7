package aggregation

import (
	"fmt"
	"time"

	"github.com/flexprice/aggbot/internal/types"
)

// BucketKey identifies one bucket at a granularity. Fields finer than the
// granularity are normalized (Day 1, Hour 0) so keys built from a truncated
// timestamp and keys built from store group ids compare equal.
type BucketKey struct {
	Year  int
	Month time.Month
	Day   int
	Hour  int
}

// KeyOf returns the key of the bucket containing t
func KeyOf(t time.Time, g types.Granularity) BucketKey {
	t = g.Truncate(t)
	return BucketKey{
		Year:  t.Year(),
		Month: t.Month(),
		Day:   t.Day(),
		Hour:  t.Hour(),
	}
}

// NewBucketKey builds a key from the truncation fields a store returns.
// Fields the granularity does not group by are ignored.
func NewBucketKey(g types.Granularity, year, month, day, hour int) BucketKey {
	if day < 1 {
		day = 1
	}
	return KeyOf(time.Date(year, time.Month(month), day, hour, 0, 0, 0, time.UTC), g)
}

// Time returns the canonical start of the bucket
func (k BucketKey) Time() time.Time {
	return time.Date(k.Year, k.Month, k.Day, k.Hour, 0, 0, 0, time.UTC)
}

// Label renders the canonical start in the response label format
func (k BucketKey) Label() string {
	return types.FormatTimestamp(k.Time())
}

func (k BucketKey) String() string {
	return fmt.Sprintf("%04d-%02d-%02d %02dh", k.Year, int(k.Month), k.Day, k.Hour)
}

// BucketTotal is one row of a store aggregation: the summed value of every
// reading in the bucket. Stores only return buckets that have readings.
type BucketTotal struct {
	Key   BucketKey
	Total float64
}

package aggregation

import "github.com/samber/lo"

// Merge overlays store rows onto a copy of the skeleton. A row replaces the
// zero of the bucket with the same key; rows whose key is not part of the
// skeleton are dropped so the response always has exactly the skeleton's
// buckets, in the skeleton's order. The input skeleton is left untouched.
func Merge(skeleton *Skeleton, rows []*BucketTotal) *Skeleton {
	merged := skeleton.clone()
	for _, row := range rows {
		if row == nil {
			continue
		}
		merged.set(row.Key, row.Total)
	}
	return merged
}

// Unmatched returns the rows Merge would drop for this skeleton
func Unmatched(skeleton *Skeleton, rows []*BucketTotal) []*BucketTotal {
	return lo.Filter(rows, func(row *BucketTotal, _ int) bool {
		return row != nil && !skeleton.Has(row.Key)
	})
}

package reading

import (
	"context"

	"github.com/flexprice/aggbot/internal/aggregation"
)

// Repository is the read only view of the readings store the aggregation
// core depends on. Implementations return one row per bucket that has at
// least one matching reading, in no guaranteed order.
type Repository interface {
	AggregateBuckets(ctx context.Context, query *aggregation.Query) ([]*aggregation.BucketTotal, error)
}

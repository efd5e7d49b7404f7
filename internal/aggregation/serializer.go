package aggregation

import (
	"github.com/flexprice/aggbot/internal/api/dto"
)

// Serialize turns a merged skeleton into the index aligned labels/dataset
// pair. Both slices are non nil so an empty range encodes as [] not null.
func Serialize(s *Skeleton) *dto.AggregateResponse {
	resp := &dto.AggregateResponse{
		Dataset: make([]float64, 0, s.Len()),
		Labels:  make([]string, 0, s.Len()),
	}
	s.Each(func(key BucketKey, value float64) {
		resp.Labels = append(resp.Labels, key.Label())
		resp.Dataset = append(resp.Dataset, value)
	})
	return resp
}

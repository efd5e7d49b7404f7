package aggregation

import (
	"time"

	"github.com/flexprice/aggbot/internal/types"
)

// Pipeline bundles everything that differs between granularities. One is
// resolved per request from the group type and nothing downstream compares
// granularity strings again.
type Pipeline interface {
	Granularity() types.Granularity
	GenerateBuckets(start, end time.Time) []time.Time
	BuildQuery(start, end time.Time) *Query
	KeyOf(t time.Time) BucketKey
}

type calendarPipeline struct {
	granularity types.Granularity
}

var (
	hourPipeline  Pipeline = calendarPipeline{granularity: types.GranularityHour}
	dayPipeline   Pipeline = calendarPipeline{granularity: types.GranularityDay}
	monthPipeline Pipeline = calendarPipeline{granularity: types.GranularityMonth}
)

// PipelineFor resolves the pipeline for g. Unsupported granularities return
// an error marked ErrNoResult.
func PipelineFor(g types.Granularity) (Pipeline, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	switch g {
	case types.GranularityHour:
		return hourPipeline, nil
	case types.GranularityDay:
		return dayPipeline, nil
	default:
		return monthPipeline, nil
	}
}

func (p calendarPipeline) Granularity() types.Granularity {
	return p.granularity
}

func (p calendarPipeline) GenerateBuckets(start, end time.Time) []time.Time {
	return GenerateBuckets(start, end, p.granularity)
}

func (p calendarPipeline) BuildQuery(start, end time.Time) *Query {
	return BuildQuery(p.granularity, start, end)
}

func (p calendarPipeline) KeyOf(t time.Time) BucketKey {
	return KeyOf(t, p.granularity)
}

// Skeletonize generates the zero filled buckets for [start, end]
func Skeletonize(p Pipeline, start, end time.Time) *Skeleton {
	return NewSkeleton(p.Granularity(), p.GenerateBuckets(start, end))
}

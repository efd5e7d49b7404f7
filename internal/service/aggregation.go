package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/flexprice/aggbot/internal/aggregation"
	"github.com/flexprice/aggbot/internal/api/dto"
	"github.com/flexprice/aggbot/internal/domain/reading"
	ierr "github.com/flexprice/aggbot/internal/errors"
	"github.com/flexprice/aggbot/internal/logger"
	"github.com/flexprice/aggbot/internal/metrics"
	"github.com/flexprice/aggbot/internal/sentry"
	"github.com/flexprice/aggbot/internal/types"
)

// AggregationService answers bucketed sum queries over the readings store
type AggregationService interface {
	// Aggregate runs a parsed request. Errors are marked ErrValidation,
	// ErrNoResult or ErrDatabase.
	Aggregate(ctx context.Context, req *dto.AggregateRequest) (*dto.AggregateResponse, error)
	// AggregateRaw decodes a JSON payload and runs it
	AggregateRaw(ctx context.Context, payload []byte) (*dto.AggregateResponse, error)
}

type aggregationService struct {
	repo    reading.Repository
	logger  *logger.Logger
	metrics *metrics.Metrics
	sentry  *sentry.Service
}

func NewAggregationService(repo reading.Repository, logger *logger.Logger, metrics *metrics.Metrics, sentryService *sentry.Service) AggregationService {
	return &aggregationService{
		repo:    repo,
		logger:  logger,
		metrics: metrics,
		sentry:  sentryService,
	}
}

func (s *aggregationService) AggregateRaw(ctx context.Context, payload []byte) (*dto.AggregateResponse, error) {
	var req dto.AggregateRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		s.metrics.Observe("", metrics.OutcomeInvalid, time.Now(), 0)
		return nil, ierr.WithError(err).
			WithHint("Request must be a JSON object with dt_from, dt_upto and group_type").
			Mark(ierr.ErrValidation)
	}
	return s.Aggregate(ctx, &req)
}

func (s *aggregationService) Aggregate(ctx context.Context, req *dto.AggregateRequest) (*dto.AggregateResponse, error) {
	started := time.Now()
	label := metricLabel(req.GroupType)

	params, err := req.Parse()
	if err != nil {
		s.metrics.Observe(label, metrics.OutcomeInvalid, started, 0)
		return nil, err
	}

	pipeline, err := aggregation.PipelineFor(params.Granularity)
	if err != nil {
		s.metrics.Observe(label, metrics.OutcomeNoResult, started, 0)
		return nil, err
	}

	skeleton := aggregation.Skeletonize(pipeline, params.From, params.Upto)
	query := pipeline.BuildQuery(params.From, params.Upto)

	rows, err := s.repo.AggregateBuckets(ctx, query)
	if err != nil {
		s.metrics.Observe(label, metrics.OutcomeError, started, 0)
		if ierr.IsDatabase(err) {
			return nil, err
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to aggregate readings").
			WithReportableDetails(map[string]any{
				"group_type": params.Granularity,
				"dt_from":    req.DTFrom,
				"dt_upto":    req.DTUpto,
			}).
			Mark(ierr.ErrDatabase)
	}

	if unmatched := aggregation.Unmatched(skeleton, rows); len(unmatched) > 0 {
		s.logger.Debugw("dropping store rows outside the requested buckets",
			"request_id", types.GetRequestID(ctx),
			"group_type", params.Granularity,
			"unmatched", len(unmatched),
			"rows", len(rows),
		)
		s.sentry.AddBreadcrumb(ctx, "aggregation", "dropped store rows outside the requested buckets", map[string]interface{}{
			"group_type": params.Granularity.String(),
			"unmatched":  len(unmatched),
			"rows":       len(rows),
		})
	}

	resp := aggregation.Serialize(aggregation.Merge(skeleton, rows))
	s.metrics.Observe(label, metrics.OutcomeOK, started, len(resp.Labels))
	return resp, nil
}

// metricLabel keeps arbitrary caller input out of metric label values
func metricLabel(g types.Granularity) string {
	if g.Validate() != nil {
		return "unsupported"
	}
	return g.String()
}

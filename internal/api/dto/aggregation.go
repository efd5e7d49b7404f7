package dto

import (
	"time"

	ierr "github.com/flexprice/aggbot/internal/errors"
	"github.com/flexprice/aggbot/internal/types"
	"github.com/flexprice/aggbot/internal/validator"
)

// AggregateRequest is the payload a caller sends, either as an HTTP body or
// as the text of a bot message
type AggregateRequest struct {
	DTFrom    string            `json:"dt_from" validate:"required" example:"2022-09-01T00:00:00"`
	DTUpto    string            `json:"dt_upto" validate:"required" example:"2022-12-31T23:59:00"`
	GroupType types.Granularity `json:"group_type" validate:"required" example:"month"`
}

// AggregateParams is a parsed AggregateRequest
type AggregateParams struct {
	From        time.Time
	Upto        time.Time
	Granularity types.Granularity
}

func (r *AggregateRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// Parse validates the request shape and both timestamps. The group type is
// carried through unchecked, resolving it is the dispatcher's job.
func (r *AggregateRequest) Parse() (*AggregateParams, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	from, err := types.ParseTimestamp("dt_from", r.DTFrom)
	if err != nil {
		return nil, err
	}

	upto, err := types.ParseTimestamp("dt_upto", r.DTUpto)
	if err != nil {
		return nil, err
	}

	if from.After(upto) {
		return nil, ierr.NewError("dt_from is after dt_upto").
			WithHint("dt_from must not be after dt_upto").
			WithReportableDetails(map[string]any{
				"dt_from": r.DTFrom,
				"dt_upto": r.DTUpto,
			}).
			Mark(ierr.ErrValidation)
	}

	return &AggregateParams{
		From:        from,
		Upto:        upto,
		Granularity: r.GroupType,
	}, nil
}

// AggregateResponse holds index aligned buckets: Labels[i] is the start of
// the i-th bucket and Dataset[i] its summed value
type AggregateResponse struct {
	Dataset []float64 `json:"dataset"`
	Labels  []string  `json:"labels"`
}

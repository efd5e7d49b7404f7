package v1

import (
	"net/http"

	"github.com/flexprice/aggbot/internal/api/dto"
	ierr "github.com/flexprice/aggbot/internal/errors"
	"github.com/flexprice/aggbot/internal/logger"
	"github.com/flexprice/aggbot/internal/service"
	"github.com/flexprice/aggbot/internal/types"
	"github.com/gin-gonic/gin"
)

type AggregationHandler struct {
	service service.AggregationService
	log     *logger.Logger
}

func NewAggregationHandler(service service.AggregationService, log *logger.Logger) *AggregationHandler {
	return &AggregationHandler{service: service, log: log}
}

// @Summary Aggregate readings
// @Description Sums readings per hour, day or month between dt_from and dt_upto. Empty buckets are zero filled.
// @Tags Aggregation
// @Accept json
// @Produce json
// @Param request body dto.AggregateRequest true "Aggregation request"
// @Success 200 {object} dto.AggregateResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 422 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /aggregate [post]
func (h *AggregationHandler) Aggregate(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.AggregateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Request must be a JSON object with dt_from, dt_upto and group_type").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.Aggregate(ctx, &req)
	if err != nil {
		if ierr.IsDatabase(err) {
			h.log.Errorw("failed to aggregate readings",
				"request_id", types.GetRequestID(ctx),
				"error", err,
			)
		}
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

package bot

import (
	"context"
	"strings"

	ierr "github.com/flexprice/aggbot/internal/errors"
	"github.com/flexprice/aggbot/internal/logger"
	"github.com/flexprice/aggbot/internal/service"
	"github.com/flexprice/aggbot/internal/types"
	jsoniter "github.com/json-iterator/go"
)

// Reply texts
const (
	ReplyInvalidInput = "Invalid input"
	ReplyNoResult     = "No result: unsupported group_type, expected hour, day or month"
	ReplyStoreFailure = "Readings are unavailable right now, try again later"
)

const startCommand = "start"

// Handler turns an incoming chat message into the reply text
type Handler struct {
	service service.AggregationService
	logger  *logger.Logger
}

func NewHandler(service service.AggregationService, logger *logger.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Greeting is the reply to /start, addressed by the sender's display name
func Greeting(name string) string {
	if name = strings.TrimSpace(name); name == "" {
		name = "there"
	}
	return "Hi " + name + "! Send me a JSON query like " +
		`{"dt_from": "2022-09-01T00:00:00", "dt_upto": "2022-12-31T23:59:00", "group_type": "month"}`
}

// HandleText answers one aggregation payload. Every failure is reported to
// the chat as text; the error itself only reaches the log.
func (h *Handler) HandleText(ctx context.Context, text string) string {
	resp, err := h.service.AggregateRaw(ctx, []byte(strings.TrimSpace(text)))
	if err != nil {
		return h.errorReply(ctx, err)
	}

	out, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(resp)
	if err != nil {
		h.logger.Errorw("failed to encode aggregation response",
			"request_id", types.GetRequestID(ctx),
			"error", err,
		)
		return ReplyStoreFailure
	}
	return string(out)
}

func (h *Handler) errorReply(ctx context.Context, err error) string {
	switch {
	case ierr.IsNoResult(err):
		return ReplyNoResult
	case ierr.IsValidation(err):
		h.logger.Debugw("rejected bot input",
			"request_id", types.GetRequestID(ctx),
			"chat_id", types.GetChatID(ctx),
			"error", err,
		)
		return ReplyInvalidInput
	default:
		h.logger.Errorw("failed to answer bot query",
			"request_id", types.GetRequestID(ctx),
			"chat_id", types.GetChatID(ctx),
			"error", err,
		)
		return ReplyStoreFailure
	}
}

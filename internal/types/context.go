package types

import (
	"context"
)

// ContextKey is a type for the keys of values stored in the context
type ContextKey string

const (
	CtxRequestID ContextKey = "ctx_request_id"
	CtxChatID    ContextKey = "ctx_chat_id"

	HeaderRequestID = "X-Request-ID"
)

func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(CtxRequestID).(string); ok {
		return requestID
	}
	return ""
}

func GetChatID(ctx context.Context) int64 {
	if chatID, ok := ctx.Value(CtxChatID).(int64); ok {
		return chatID
	}
	return 0
}

// WithRequestID returns ctx carrying a fresh request id unless one is already set
func WithRequestID(ctx context.Context) context.Context {
	if GetRequestID(ctx) != "" {
		return ctx
	}
	return context.WithValue(ctx, CtxRequestID, GenerateUUID())
}

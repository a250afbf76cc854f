package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-identity-backend/pkg/clock"
)

// CtxClock is the Gin context key holding the clock that stamps envelopes.
const CtxClock = "clock"

var systemClock = clock.NewSystem(time.UTC)

// WithClock makes every envelope written during the request use c for its timestamp.
func WithClock(c clock.Clock) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Set(CtxClock, c)
		ctx.Next()
	}
}

func now(ctx *gin.Context) time.Time {
	if v, ok := ctx.Get(CtxClock); ok {
		if c, ok := v.(clock.Clock); ok {
			return c.Now().UTC()
		}
	}
	return systemClock.Now()
}

type APIResponse[T any] struct {
	Status    int         `json:"status"`
	Timestamp time.Time   `json:"timestamp"`
	RequestID string      `json:"request_id"`
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      T           `json:"data,omitempty"`
	Meta      interface{} `json:"meta,omitempty"`
	Error     interface{} `json:"error,omitempty"`
}

// Success writes a success envelope and returns it.
func Success[T any](ctx *gin.Context, status int, data T, message string, meta interface{}) APIResponse[T] {
	if status == 0 {
		status = http.StatusOK
	}
	resp := APIResponse[T]{
		Status:    status,
		Timestamp: now(ctx),
		RequestID: ctx.GetString("request_id"),
		Success:   true,
		Message:   message,
		Data:      data,
		Meta:      meta,
	}
	ctx.JSON(status, resp)
	return resp
}

// Error writes an error envelope and returns it.
func Error[T any](ctx *gin.Context, status int, message string, err interface{}) APIResponse[T] {
	resp := errorEnvelope[T](ctx, status, message, err)
	ctx.JSON(resp.Status, resp)
	return resp
}

// Abort is Error for middleware: it also stops the handler chain.
func Abort(ctx *gin.Context, status int, message string, err interface{}) {
	resp := errorEnvelope[any](ctx, status, message, err)
	ctx.AbortWithStatusJSON(resp.Status, resp)
}

func errorEnvelope[T any](ctx *gin.Context, status int, message string, err interface{}) APIResponse[T] {
	if status == 0 {
		status = http.StatusBadRequest
	}
	return APIResponse[T]{
		Status:    status,
		Timestamp: now(ctx),
		RequestID: ctx.GetString("request_id"),
		Success:   false,
		Message:   message,
		Error:     err,
	}
}

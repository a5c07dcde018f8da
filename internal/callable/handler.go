// Package callable implements the HTTPS callable-function protocol.
//
// A call is a JSON POST whose body is {"data": ...}. A successful call responds
// with {"result": ...}; a failed call responds with {"error": {...}} and an HTTP
// status derived from the error kind.
package callable

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/database-playground/account-eraser/internal/auth"
	"github.com/database-playground/account-eraser/internal/httputils"
	"github.com/gin-gonic/gin"
)

// CallContext is the per-call metadata passed to a callable function.
//
// Auth is nil when the caller did not present a credential.
type CallContext struct {
	Auth    *auth.AuthData
	Machine string
}

// NewCallContext builds the CallContext from the values the middlewares
// attached to ctx.
func NewCallContext(ctx context.Context) CallContext {
	call := CallContext{
		Machine: httputils.GetMachineName(ctx),
	}

	if user, ok := auth.GetUser(ctx); ok {
		call.Auth = &user
	}

	return call
}

// Func is a callable function.
type Func[T any] func(ctx context.Context, call CallContext, data json.RawMessage) (T, error)

type errorBody struct {
	Status  Code   `json:"status"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

type resultResponse struct {
	Result any `json:"result"`
}

// Handle adapts fn into a gin handler speaking the callable protocol.
func Handle[T any](fn Func[T]) gin.HandlerFunc {
	return func(c *gin.Context) {
		data, err := DecodeRequest(c.Request)
		if err != nil {
			slog.Debug("rejecting malformed callable request", "error", err, "path", c.FullPath())
			WriteError(c, NewError(CodeInvalidArgument, "Bad Request"))
			return
		}

		ctx := c.Request.Context()
		result, err := fn(ctx, NewCallContext(ctx), data)
		if err != nil {
			callableErr := FromError(err)
			if callableErr.Code.HTTPStatus() >= 500 {
				slog.Error("callable function failed", "error", err, "path", c.FullPath(), "status", callableErr.Code)
			}

			WriteError(c, callableErr)
			return
		}

		WriteResult(c, result)
	}
}

// WriteResult writes a successful callable response.
func WriteResult(c *gin.Context, result any) {
	c.JSON(CodeOK.HTTPStatus(), resultResponse{Result: result})
}

// WriteError writes err as a callable error response and aborts the chain.
func WriteError(c *gin.Context, err *Error) {
	c.AbortWithStatusJSON(err.Code.HTTPStatus(), errorResponse{
		Error: errorBody{
			Status:  err.Code,
			Message: err.Message,
			Details: err.Details,
		},
	})
}

// RejectUnauthenticated responds to a request whose credential could not be
// verified. It is meant to be passed to auth.Middleware.
func RejectUnauthenticated(c *gin.Context, err error) {
	slog.Debug("rejecting callable request with invalid credential", "error", err, "path", c.FullPath())
	WriteError(c, NewError(CodeUnauthenticated, "Unauthenticated"))
}

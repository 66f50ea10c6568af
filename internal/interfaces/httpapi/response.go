package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/MelloMattGit/CFBPyckem/internal/domain/pick"
	"github.com/MelloMattGit/CFBPyckem/internal/usecase"
)

type okBody struct {
	OK bool `json:"ok"`
}

type errorBody struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	ctx, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeOK(ctx context.Context, w http.ResponseWriter) {
	writeJSON(ctx, w, http.StatusOK, okBody{OK: true})
}

func writeData(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	writeJSON(ctx, w, status, payload)
}

// writeError maps sentinel errors to status codes. Client-class failures
// echo the error text; anything unexpected becomes a 500 whose detail is
// also logged by the caller.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	ctx, span := startSpan(ctx, "httpapi.writeError")
	defer span.End()

	status := mapErrorStatus(err)
	if status == http.StatusInternalServerError {
		writeJSON(ctx, w, status, errorBody{
			Error:  "internal server error",
			Detail: err.Error(),
		})
		return
	}
	writeJSON(ctx, w, status, errorBody{Error: err.Error()})
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	writeJSON(ctx, w, http.StatusInternalServerError, errorBody{
		Error:  "internal server error",
		Detail: "unexpected failure",
	})
}

func mapErrorStatus(err error) int {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput),
		errors.Is(err, usecase.ErrUpstreamAuth),
		errors.Is(err, pick.ErrMatchLocked):
		return http.StatusBadRequest
	case errors.Is(err, usecase.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, usecase.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, usecase.ErrDependencyUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

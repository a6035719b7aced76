package transport

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/adikrishnan/expense-ledger/internal"
	"github.com/adikrishnan/expense-ledger/pkg/logger"
)

// BaseHandler provides the shared response envelope. Every operation
// returns exactly one of a success payload or a single named error,
// so callers can rely on the shape of both.
type BaseHandler struct {
	Logger *slog.Logger
}

func NewBaseHandler(lg *slog.Logger) *BaseHandler {
	if lg == nil {
		lg = logger.LoggerWrapper()
	}
	return &BaseHandler{Logger: lg}
}

type successEnvelope struct {
	Status string `json:"status"`
	Result any    `json:"result"`
}

type errorEnvelope struct {
	Status string             `json:"status"`
	Error  *internal.AppError `json:"error"`
}

// WriteResult writes {"status":"success","result":...}.
func (h *BaseHandler) WriteResult(w http.ResponseWriter, status int, result any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(successEnvelope{Status: "success", Result: result}); err != nil {
		h.Logger.Error("failed to encode JSON response", "error", err)
	}
}

// WriteAppError maps a service error to its HTTP status and writes the
// error envelope. Anything that is not an AppError is reported as a
// persistence-level internal failure without leaking the cause.
func (h *BaseHandler) WriteAppError(w http.ResponseWriter, err error) {
	appErr, ok := internal.IsAppError(err)
	if !ok {
		appErr = internal.NewPersistenceError("internal error", err)
	}

	h.Logger.Error("request failed", "code", appErr.Code, "status", appErr.StatusCode, "error", err)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.StatusCode)
	if encodeErr := json.NewEncoder(w).Encode(errorEnvelope{Status: "error", Error: appErr}); encodeErr != nil {
		h.Logger.Error("failed to encode error response", "error", encodeErr)
	}
}

// WriteBadRequest is for transport-level decode failures that never reach
// a service.
func (h *BaseHandler) WriteBadRequest(w http.ResponseWriter, message string) {
	h.WriteAppError(w, internal.NewValidationError(message, internal.ErrCodeInvalidFormat))
}

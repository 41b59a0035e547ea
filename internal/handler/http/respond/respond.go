// Package respond writes the JSON bodies of the selection API.
//
// Every error body has the shape {"error": "..."}. Client errors (4xx) carry
// the validation message as-is; server errors are logged with secrets masked
// and answered with a generic message.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// ErrorBody is the JSON envelope of every error response.
type ErrorBody struct {
	Error string `json:"error"`
}

const internalErrorMessage = "internal server error"

// JSON writes v as JSON with the given status code. A nil v writes no body.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// ヘッダー送信済みのためログのみ
		slog.Default().Error("failed to encode JSON response",
			slog.Int("status_code", code),
			slog.Any("error", err))
	}
}

// SafeError writes err as an error body.
//
// For 4xx codes the message is returned to the client: those errors come from
// request validation (bad ids, pages, bodies) and contain only client input.
// For 5xx codes the error is logged with credentials masked and the client
// gets "internal server error".
func SafeError(w http.ResponseWriter, code int, err error) {
	if err == nil {
		return
	}
	if code < http.StatusInternalServerError {
		JSON(w, code, ErrorBody{Error: err.Error()})
		return
	}

	slog.Default().Error("internal server error",
		slog.String("status", http.StatusText(code)),
		slog.Int("code", code),
		slog.String("error", SanitizeError(err)))
	JSON(w, code, ErrorBody{Error: internalErrorMessage})
}

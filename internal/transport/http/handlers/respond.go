package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/akshatdev/bitblog/internal/apperror"
)

// apiFunc is a handler that reports failures by returning an error instead of
// writing a response itself.
type apiFunc func(w http.ResponseWriter, r *http.Request) error

// Wrap is the single error-reporting boundary. Errors without a status are
// treated as internal; their cause is logged, never sent to the client.
func Wrap(log *slog.Logger, fn apiFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := fn(w, r)
		if err == nil {
			return
		}

		var appErr *apperror.Error
		if !errors.As(err, &appErr) {
			appErr = apperror.Internal("Internal Server Error", err)
		}

		if appErr.Status >= http.StatusInternalServerError {
			log.Error("request failed",
				"method", r.Method,
				"path", r.URL.Path,
				"error", appErr.Error(),
			)
		}

		writeJSON(w, appErr.Status, map[string]any{
			"success":    false,
			"statusCode": appErr.Status,
			"message":    appErr.Message,
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

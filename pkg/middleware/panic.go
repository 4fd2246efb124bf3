package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"
)

// Panic recovers handler panics and answers 500 unless the handler already
// started the response. http.ErrAbortHandler is re-raised for net/http.
func Panic(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			defer func() {
				err := recover()
				if err == nil {
					return
				}
				if err == http.ErrAbortHandler {
					panic(err)
				}

				logger.Error("panic recovered",
					"error", err,
					"method", r.Method,
					"path", r.URL.Path,
					"stack", string(debug.Stack()),
				)
				if rec.wroteHeader {
					return
				}
				writeMessage(w, logger, http.StatusInternalServerError, "Internal server error")
			}()

			next.ServeHTTP(rec, r)
		})
	}
}

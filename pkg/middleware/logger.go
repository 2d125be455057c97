package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// NewStructuredLogger emits one slog record per request. Server errors log at
// Error level so conversion submission failures stand out in aggregation.
func NewStructuredLogger(logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			defer func() {
				attrs := []any{
					slog.Group("request",
						slog.String("id", middleware.GetReqID(r.Context())),
						slog.String("method", r.Method),
						slog.String("path", r.URL.Path),
						slog.String("remote_addr", r.RemoteAddr),
					),
					slog.Group("response",
						slog.Int("status", ww.Status()),
						slog.Int("bytes", ww.BytesWritten()),
						slog.Duration("latency", time.Since(start)),
					),
				}

				if ww.Status() >= http.StatusInternalServerError {
					logger.Error("server error", attrs...)
					return
				}
				logger.Info("request completed", attrs...)
			}()

			next.ServeHTTP(ww, r)
		}
		return http.HandlerFunc(fn)
	}
}

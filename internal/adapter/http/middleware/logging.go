package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/Abdurahmanit/GroupProject/agrilink-service/internal/platform/logger"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestIDHeader = "X-Request-ID"

// RequestLogger assigns a request id and logs one entry per request.
func RequestLogger(log *logger.Logger) func(http.Handler) http.Handler {
	log = log.Named("HTTP")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			reqID := r.Header.Get(requestIDHeader)
			if reqID == "" {
				reqID = uuid.NewString()
			}
			w.Header().Set(requestIDHeader, reqID)
			ctx := context.WithValue(r.Context(), RequestIDCtxKey, reqID)

			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			fields := []zap.Field{
				zap.String("request_id", reqID),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", status),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
			}
			switch {
			case status >= http.StatusInternalServerError:
				log.Error("Request failed", fields...)
			case status >= http.StatusBadRequest:
				log.Warn("Request rejected", fields...)
			default:
				log.Info("Request served", fields...)
			}
		})
	}
}

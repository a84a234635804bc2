package main

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/Simplici0/partquote/internal/metrics"
)

// requestLogger logs every request and records the HTTP metrics under the
// matched route pattern.
func (s *server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		latency := time.Since(start)
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		metrics.HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		metrics.HTTPDuration.WithLabelValues(r.Method, route).Observe(latency.Seconds())

		fields := []zap.Field{
			zap.Int("status", status),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("query", r.URL.RawQuery),
			zap.String("route", route),
			zap.Duration("latency", latency),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		}

		switch {
		case status >= 500:
			s.log.Error("server error", fields...)
		case status >= 400:
			s.log.Warn("client error", fields...)
		default:
			s.log.Info("request", fields...)
		}
	})
}

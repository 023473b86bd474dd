// Package middleware provides the HTTP middleware of the registry API:
// request logging, gzip, bearer authentication, the admin guard, the trusted
// subnet check and the anonymous creation throttle.
package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// statusRecorder remembers the status and body size of a response.
type statusRecorder struct {
	http.ResponseWriter
	status int
	size   int
}

func (r *statusRecorder) WriteHeader(status int) {
	if r.status == 0 {
		r.status = status
	}
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(b)
	r.size += n
	return n, err
}

// levelFor logs server failures as errors and everything else at info, so
// a flood of 404s from scanners stays out of the error stream.
func levelFor(status int) zapcore.Level {
	if status >= http.StatusInternalServerError {
		return zapcore.ErrorLevel
	}
	return zapcore.InfoLevel
}

// WithRequestLogging logs one entry per request: method, host, url, the chi
// route pattern, client address, status, size and duration.
func WithRequestLogging(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w}

			next.ServeHTTP(rec, r)

			if rec.status == 0 {
				rec.status = http.StatusOK
			}

			route := ""
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				route = rctx.RoutePattern()
			}

			if ce := log.Check(levelFor(rec.status), "HTTP Request"); ce != nil {
				ce.Write(
					zap.String("method", r.Method),
					zap.String("host", r.Host),
					zap.String("url", r.URL.String()),
					zap.String("route", route),
					zap.String("remote_addr", r.RemoteAddr),
					zap.Int("status", rec.status),
					zap.Int("size", rec.size),
					zap.Duration("duration", time.Since(start)),
				)
			}
		})
	}
}

package middleware

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/turtacn/FreonTrack-Compliance/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/FreonTrack-Compliance/internal/infrastructure/monitoring/prometheus"
)

// wrappedResponseWriter captures status code and bytes written for the
// access log.
type wrappedResponseWriter struct {
	http.ResponseWriter
	statusCode   int
	bytesWritten int64
	wroteHeader  bool
}

func newWrappedResponseWriter(w http.ResponseWriter) *wrappedResponseWriter {
	return &wrappedResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}
}

func (w *wrappedResponseWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.statusCode = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *wrappedResponseWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytesWritten += int64(n)
	return n, err
}

func (w *wrappedResponseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if hijacker, ok := w.ResponseWriter.(http.Hijacker); ok {
		return hijacker.Hijack()
	}
	return nil, nil, fmt.Errorf("response writer does not implement http.Hijacker")
}

func (w *wrappedResponseWriter) Flush() {
	if flusher, ok := w.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

// LoggingMiddleware writes one access log line per request and feeds the
// HTTP request metrics. High-frequency probe paths are skipped.
type LoggingMiddleware struct {
	logger        logging.Logger
	metrics       *prometheus.AppMetrics
	skipPaths     map[string]bool
	slowThreshold time.Duration
}

func NewLoggingMiddleware(log logging.Logger, metrics *prometheus.AppMetrics) *LoggingMiddleware {
	return &LoggingMiddleware{
		logger:  log,
		metrics: metrics,
		skipPaths: map[string]bool{
			"/healthz": true,
			"/readyz":  true,
			"/metrics": true,
		},
		slowThreshold: 3 * time.Second,
	}
}

func (m *LoggingMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.skipPaths[r.URL.Path] {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		wrapped := newWrappedResponseWriter(w)
		next.ServeHTTP(wrapped, r)
		duration := time.Since(start)

		if m.metrics != nil {
			// Use the chi route pattern, not the raw path, so metric
			// cardinality stays bounded.
			pattern := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if p := rctx.RoutePattern(); p != "" {
					pattern = p
				}
			}
			prometheus.RecordHTTPRequest(m.metrics, r.Method, pattern, wrapped.statusCode, duration)
		}

		fields := []logging.Field{
			logging.String("method", r.Method),
			logging.String("path", r.URL.Path),
			logging.Int("status", wrapped.statusCode),
			logging.Float64("duration_ms", float64(duration.Microseconds())/1000),
			logging.Int64("bytes", wrapped.bytesWritten),
			logging.String("remote_addr", r.RemoteAddr),
		}
		if reqID := r.Header.Get("X-Request-ID"); reqID != "" {
			fields = append(fields, logging.String("request_id", reqID))
		}

		switch {
		case wrapped.statusCode >= 500:
			m.logger.Error("HTTP request", fields...)
		case wrapped.statusCode >= 400:
			m.logger.Warn("HTTP request", fields...)
		case duration >= m.slowThreshold:
			m.logger.Warn("HTTP request (slow)", fields...)
		default:
			m.logger.Info("HTTP request", fields...)
		}
	})
}

//Personal.AI order the ending

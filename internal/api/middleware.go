package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	apperrors "career-predictor/internal/common/errors"
	"career-predictor/internal/common/logger"
	"career-predictor/internal/common/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// HeaderRequestID is read from the request when present and always echoed.
const HeaderRequestID = "X-Request-ID"

type requestIDKey struct{}

// RequestID tags every request with an ID, generating one when the client
// did not send it.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(HeaderRequestID, id)
		ctx := context.WithValue(r.Context(), requestIDKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestIDFromContext returns the ID set by RequestID, or "".
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// Instrument records Prometheus request metrics and writes one log line per
// request.
func Instrument(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			metrics.TrackActiveRequest(true)
			defer metrics.TrackActiveRequest(false)

			start := time.Now()
			wrapper := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(wrapper, r)

			duration := time.Since(start)
			route := routePattern(r)
			metrics.RecordHTTPRequest(r.Method, route, strconv.Itoa(wrapper.statusCode), duration)

			fields := map[string]interface{}{
				"requestId":  RequestIDFromContext(r.Context()),
				"method":     r.Method,
				"route":      route,
				"status":     wrapper.statusCode,
				"durationMs": duration.Milliseconds(),
			}
			if route == "/metrics" || route == "/health" {
				log.Debug("request completed", fields)
				return
			}
			log.Info("request completed", fields)
		})
	}
}

// routePattern keeps metric labels bounded to registered routes.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}

// statusRecorder wraps http.ResponseWriter to capture the status code.
type statusRecorder struct {
	http.ResponseWriter
	statusCode  int
	wroteHeader bool
}

func (rw *statusRecorder) WriteHeader(code int) {
	if !rw.wroteHeader {
		rw.statusCode = code
		rw.wroteHeader = true
	}
	rw.ResponseWriter.WriteHeader(code)
}

// Recover answers a panicking handler with the same 500 body as any other
// unexpected error.
func Recover(errs *apperrors.ErrorHandler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				errs.WriteError(w, r, apperrors.NewInternalError(fmt.Errorf("panic: %v", rec)))
			}()
			next.ServeHTTP(w, r)
		})
	}
}

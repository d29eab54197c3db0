package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kaypiton/billing-backend/internal/logging"
	"github.com/kaypiton/billing-backend/internal/services"
)

type ctxKey int

const ctxTraceIDKey ctxKey = iota

func traceIDFrom(ctx context.Context) string {
	if id, ok := ctx.Value(ctxTraceIDKey).(string); ok {
		return id
	}
	return ""
}

// withTraceID assigns every request a trace id, echoed in the X-Trace-Id
// header and in the response envelope.
func withTraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Trace-Id", id)
		ctx := context.WithValue(r.Context(), ctxTraceIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

func withRequestLogging(logger logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Info(r.Context(), "request handled",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
			"trace_id", traceIDFrom(r.Context()),
		)
	})
}

// requireAuth guards a handler with bearer-token authentication.
func requireAuth(issuer *services.TokenIssuer, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authz := r.Header.Get("Authorization")
		parts := strings.Fields(authz)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			writeJSON(w, r, http.StatusUnauthorized, envelope{Errors: []string{"Authorization token is missing or malformed."}})
			return
		}

		if _, err := issuer.ParseAccessToken(parts[1]); err != nil {
			writeJSON(w, r, http.StatusUnauthorized, envelope{Errors: []string{"Invalid credentials or token."}})
			return
		}

		next.ServeHTTP(w, r)
	})
}

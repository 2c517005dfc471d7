package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/authgate/authgate/internal/common"
	"github.com/authgate/authgate/internal/server/auth"
	"github.com/google/uuid"
)

type ctxKey string

const (
	claimsKey    ctxKey = "claims"
	requestIDKey ctxKey = "requestID"
)

// RequestIDHeader carries the request correlation ID in both directions.
const RequestIDHeader = "X-Request-Id"

// ClaimsFromContext returns the verified claims stored by the
// authenticate middleware, or nil when the request is unauthenticated.
func ClaimsFromContext(ctx context.Context) *auth.Claims {
	claims, ok := ctx.Value(claimsKey).(*auth.Claims)
	if !ok {
		return nil
	}
	return claims
}

// RequestIDFromContext returns the request correlation ID, or "".
func RequestIDFromContext(ctx context.Context) string {
	id, ok := ctx.Value(requestIDKey).(string)
	if !ok {
		return ""
	}
	return id
}

// requestID assigns each request a correlation ID, reusing the inbound
// header value when the caller supplied one.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}

		ctx := context.WithValue(r.Context(), requestIDKey, id)
		w.Header().Set(RequestIDHeader, id)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		s.logger.Info(r.Context(), "request",
			"request_id", RequestIDFromContext(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}

// authenticate gates protected endpoints. The bearer token is extracted
// from the Authorization header and verified; the resulting claims are
// stored in the request context. A missing, malformed, badly signed, or
// expired token all produce the identical 401 response — the cause is
// visible in the server log only.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get(common.AuthorizationHeaderName)
		if !strings.HasPrefix(header, common.BearerSchemePrefix) {
			s.logger.Warn(r.Context(), "unauthenticated request",
				"request_id", RequestIDFromContext(r.Context()),
				"reason", "missing bearer token",
			)
			writeUnauthorized(w)
			return
		}

		token := strings.TrimPrefix(header, common.BearerSchemePrefix)

		claims, err := s.authority.Verify(token)
		if err != nil {
			s.logger.Warn(r.Context(), "unauthenticated request",
				"request_id", RequestIDFromContext(r.Context()),
				"reason", err.Error(),
			)
			writeUnauthorized(w)
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

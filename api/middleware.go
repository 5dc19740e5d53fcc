package api

import (
	"context"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/ReadCircle/bookgraphGo/apperrors"
	"github.com/ReadCircle/bookgraphGo/logger"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

type contextKey string

const userIdKey contextKey = "userId"

// UserId returns the authenticated user id stored by the auth middleware.
func UserId(ctx context.Context) string {
	userId, _ := ctx.Value(userIdKey).(string)
	return userId
}

// authMiddleware resolves the bearer credential to a user id. Tokens are
// verified here but never issued; an external auth service mints them.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if len(header) == 0 {
			respondError(w, apperrors.Unauthorized("missing authorization header"))
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			respondError(w, apperrors.Unauthorized("invalid authorization header format"))
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, apperrors.Unauthorized("unexpected signing method")
			}
			return s.jwtSecret, nil
		})
		if err != nil || !token.Valid {
			respondError(w, apperrors.Unauthorized("invalid or expired token"))
			return
		}
		subject, err := token.Claims.GetSubject()
		if err != nil || len(subject) == 0 {
			respondError(w, apperrors.Unauthorized("token has no subject"))
			return
		}

		ctx := context.WithValue(r.Context(), userIdKey, subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// rateLimitMiddleware applies a per-client token bucket keyed by remote IP.
func (s *Server) rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			key = r.RemoteAddr
		}
		if !s.limiter.Allow(key) {
			respondJSON(w, http.StatusTooManyRequests, errorResponse{
				Error: errorBody{Code: "RATE_LIMITED", Message: "too many requests"},
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requestLogger logs method, path, status and latency for every request.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)
		logger.Info("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", recorder.status),
			zap.Duration("duration", time.Since(start)))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

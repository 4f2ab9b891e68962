package http

import (
	"context"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/clintonMF/smilecook/internal/core/domain"
	"github.com/clintonMF/smilecook/internal/core/ports"
)

type contextKey string

const identityKey contextKey = "identity"

// Authenticate resolves an optional bearer token into a caller identity.
// Requests without a token pass through anonymously; a presented token that
// fails validation or is revoked is rejected outright.
func Authenticate(auth ports.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				respondError(w, domain.ErrInvalidToken)
				return
			}

			identity, err := auth.Identify(r.Context(), token)
			if err != nil {
				respondError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth rejects requests that did not authenticate.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if callerIdentity(r) == nil {
			respondError(w, domain.ErrUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RateLimit gates a route by caller key: the authenticated user id when
// present, the client IP otherwise. It runs before the cache lookup, so
// cached responses count against the limit too.
func RateLimit(limiter ports.RateLimiter, route string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := clientIP(r)
			if identity := callerIdentity(r); identity != nil {
				key = identity.UserID.String()
			}
			if !limiter.Allow(key, route) {
				respondError(w, domain.ErrRateLimited)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequestLogger logs one line per request.
func RequestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}

func callerIdentity(r *http.Request) *domain.Identity {
	identity, _ := r.Context().Value(identityKey).(*domain.Identity)
	return identity
}

func callerID(r *http.Request) *uuid.UUID {
	if identity := callerIdentity(r); identity != nil {
		id := identity.UserID
		return &id
	}
	return nil
}

func clientIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

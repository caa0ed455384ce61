// Package middleware provides the HTTP middleware chain for the API server.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/turtacn/FreonTrack-Compliance/internal/config"
	"github.com/turtacn/FreonTrack-Compliance/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/FreonTrack-Compliance/pkg/errors"
)

type contextKey int

const roleContextKey contextKey = iota

// TokenValidator checks a bearer token and returns the role it grants.
// Deployments that need more than static tokens plug in their own
// implementation here.
type TokenValidator interface {
	Validate(token string) (role string, err error)
}

// StaticTokenValidator resolves tokens against a fixed token-to-role map
// from configuration.
type StaticTokenValidator struct {
	tokens map[string]string
}

func NewStaticTokenValidator(tokens map[string]string) *StaticTokenValidator {
	return &StaticTokenValidator{tokens: tokens}
}

func (v *StaticTokenValidator) Validate(token string) (string, error) {
	role, ok := v.tokens[token]
	if !ok {
		return "", errors.Unauthorized("unknown token")
	}
	return role, nil
}

// AuthMiddleware enforces bearer-token authentication on the API routes.
type AuthMiddleware struct {
	validator TokenValidator
	enabled   bool
	logger    logging.Logger
}

// NewAuthMiddleware builds the middleware from config. When auth is
// disabled every request passes through with an empty role.
func NewAuthMiddleware(cfg config.AuthConfig, log logging.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		validator: NewStaticTokenValidator(cfg.StaticTokens),
		enabled:   cfg.Enabled,
		logger:    log,
	}
}

// WithValidator swaps the token validator, keeping the enabled flag.
func (m *AuthMiddleware) WithValidator(v TokenValidator) *AuthMiddleware {
	m.validator = v
	return m
}

// Handler authenticates the request and stores the granted role in the
// context. Missing or invalid credentials get 401 with no detail about
// which check failed.
func (m *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.enabled {
			next.ServeHTTP(w, r)
			return
		}

		token := bearerToken(r)
		if token == "" {
			writeUnauthorized(w)
			return
		}

		role, err := m.validator.Validate(token)
		if err != nil {
			m.logger.Warn("Rejected API request",
				logging.String("path", r.URL.Path),
				logging.String("remote_addr", r.RemoteAddr),
			)
			writeUnauthorized(w)
			return
		}

		ctx := context.WithValue(r.Context(), roleContextKey, role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ContextRole returns the role granted to the request, or "" when the
// request is unauthenticated (auth disabled).
func ContextRole(ctx context.Context) string {
	role, _ := ctx.Value(roleContextKey).(string)
	return role
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("WWW-Authenticate", `Bearer realm="freontrack"`)
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"code":"COMMON_003","message":"authentication required"}`))
}

//Personal.AI order the ending

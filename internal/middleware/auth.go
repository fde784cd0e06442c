package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"payments-service/internal/domain"
	"payments-service/pkg/response"
)

type contextKey string

const callerKey contextKey = "caller"

// Claims is the token payload the store's auth service issues: the user's
// email in the subject plus their role.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// CallerFromContext returns the authenticated caller set by Authenticator.
func CallerFromContext(ctx context.Context) (domain.Caller, bool) {
	caller, ok := ctx.Value(callerKey).(domain.Caller)
	return caller, ok
}

// WithCaller returns ctx carrying the given caller. Used by tests and by the
// middleware itself.
func WithCaller(ctx context.Context, caller domain.Caller) context.Context {
	return context.WithValue(ctx, callerKey, caller)
}

// Authenticator verifies the Bearer token and attaches the caller identity to
// the request context. Requests without a valid token are rejected.
func Authenticator(secret []byte, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := extractBearer(r)
			if !ok {
				response.Error(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			claims := &Claims{}
			parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return secret, nil
			})
			if err != nil || !parsed.Valid {
				logger.Warn("token rejected",
					zap.String("remote_addr", r.RemoteAddr),
					zap.Error(err))
				response.Error(w, http.StatusUnauthorized, "invalid token")
				return
			}
			if claims.Subject == "" {
				response.Error(w, http.StatusUnauthorized, "invalid token")
				return
			}

			role := domain.Role(claims.Role)
			if role == "" {
				role = domain.RoleCustomer
			}

			caller := domain.Caller{Email: claims.Subject, Role: role}
			next.ServeHTTP(w, r.WithContext(WithCaller(r.Context(), caller)))
		})
	}
}

func extractBearer(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

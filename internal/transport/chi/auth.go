package chi

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/kailas-cloud/cinedex/internal/domain"
)

// DefaultAdminRole is the role claim admin routes require.
const DefaultAdminRole = "admin"

// Claims are the JWT claims the admin routes read.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// AuthConfig configures admin authentication.
type AuthConfig struct {
	Secret    []byte
	AdminRole string
	// Disabled passes every request through. Meant for local runs only.
	Disabled bool
}

// IssueToken signs an HS256 token for subject with role, valid for ttl.
func IssueToken(secret []byte, subject, role string, ttl time.Duration) (string, error) {
	if len(secret) == 0 {
		return "", errors.New("jwt secret is empty")
	}
	now := time.Now()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// ParseToken verifies an HS256 token and returns its claims.
func ParseToken(tokenStr string, secret []byte) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrUnauthorized, err)
	}
	return claims, nil
}

// AdminAuthMiddleware requires a valid Bearer JWT carrying the admin role.
func AdminAuthMiddleware(cfg AuthConfig) func(http.Handler) http.Handler {
	role := cfg.AdminRole
	if role == "" {
		role = DefaultAdminRole
	}

	return func(next http.Handler) http.Handler {
		if cfg.Disabled {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" {
				writeError(w, http.StatusUnauthorized, domain.ErrUnauthorized.Error(), "missing authorization header")
				return
			}

			const bearerPrefix = "Bearer "
			if !strings.HasPrefix(auth, bearerPrefix) {
				writeError(w, http.StatusUnauthorized,
					domain.ErrUnauthorized.Error(), "authorization header must use Bearer scheme")
				return
			}

			claims, err := ParseToken(auth[len(bearerPrefix):], cfg.Secret)
			if err != nil {
				writeError(w, http.StatusUnauthorized, domain.ErrUnauthorized.Error(), "invalid or expired token")
				return
			}
			if claims.Role != role {
				writeError(w, http.StatusForbidden, domain.ErrForbidden.Error(), "admin role required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

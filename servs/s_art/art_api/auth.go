// file:artkv/servs/s_art/art_api/auth.go
package art_api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rskv-p/artkv/servs/s_art/art_serv"
	"gorm.io/gorm"
)

type jwtClaims struct {
	Username string `json:"sub"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

type contextKey string

const jwtContextKey = contextKey("jwt_claims")

// Auth issues and checks bearer tokens.
type Auth struct {
	key     []byte
	ttl     time.Duration
	enabled bool
}

// NewAuth creates an Auth signing with secret. A disabled Auth lets every
// request through.
func NewAuth(secret string, ttl time.Duration, enabled bool) *Auth {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &Auth{key: []byte(secret), ttl: ttl, enabled: enabled}
}

// -------- /auth/login --------
func (a *Auth) HandleLogin(db *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}

		user, err := art_serv.FindUserByUsername(db, req.Username)
		if err != nil || !user.CheckPassword(req.Password) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		token, err := a.Token(user.Username, user.Role)
		if err != nil {
			http.Error(w, "token error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"token": token})
	}
}

// Token signs a token for username with role.
func (a *Auth) Token(username, role string) (string, error) {
	claims := jwtClaims{
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(a.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.key)
}

func (a *Auth) parse(tokenStr string) (*jwtClaims, error) {
	claims := &jwtClaims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return a.key, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// -------- Middleware: JWT Token Validation --------
func (a *Auth) Middleware(requiredRole string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !a.enabled {
				next.ServeHTTP(w, r)
				return
			}

			tokenStr := extractToken(r)
			if tokenStr == "" {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			claims, err := a.parse(tokenStr)
			if err != nil {
				http.Error(w, "invalid or expired token", http.StatusUnauthorized)
				return
			}
			if requiredRole != "" && claims.Role != requiredRole {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}

			ctx := context.WithValue(r.Context(), jwtContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractToken reads a bearer header, or the token query parameter that
// browser websocket clients have to use.
func extractToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return r.URL.Query().Get("token")
}

// UserFromContext returns the claims stored by the middleware.
func UserFromContext(ctx context.Context) (username, role string, ok bool) {
	claims, ok := ctx.Value(jwtContextKey).(*jwtClaims)
	if !ok {
		return "", "", false
	}
	return claims.Username, claims.Role, true
}

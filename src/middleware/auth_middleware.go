package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"finance-tracker-server/src/logging"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const (
	usernameKey   contextKey = "username"
	userIDKey     contextKey = "user_id"
	superAdminKey contextKey = "super_admin"
)

var (
	errMissingToken = errors.New("missing token")
	errInvalidToken = errors.New("invalid token")
)

// IssueToken signs an HS256 token carrying the claims JWTAuthMiddleware reads.
func IssueToken(secret string, userID int64, username string, superAdmin bool, expiry time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":     userID,
		"username":    username,
		"super_admin": superAdmin,
		"exp":         time.Now().Add(expiry).Unix(),
	})
	return token.SignedString([]byte(secret))
}

// ParseTokenFromRequest extracts and validates JWT token from request, returning claims if valid
func ParseTokenFromRequest(r *http.Request, secret string) (jwt.MapClaims, error) {
	tokenString := r.Header.Get("Authorization")
	if tokenString == "" {
		return nil, errMissingToken
	}

	tokenString = strings.TrimPrefix(tokenString, "Bearer ")

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("invalid signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, errInvalidToken
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token claims")
}

func JWTAuthMiddleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := ParseTokenFromRequest(r, secret)
			if err != nil {
				http.Error(w, err.Error(), http.StatusUnauthorized)
				return
			}

			// JSON numbers decode as float64.
			rawID, ok := claims["user_id"].(float64)
			if !ok {
				http.Error(w, "invalid token claims", http.StatusUnauthorized)
				return
			}
			username, _ := claims["username"].(string)
			superAdmin, _ := claims["super_admin"].(bool)

			ctx := context.WithValue(r.Context(), usernameKey, username)
			ctx = context.WithValue(ctx, superAdminKey, superAdmin)
			ctx = WithUserID(ctx, int64(rawID))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func SuperAdminMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !IsSuperAdmin(r.Context()) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// WithUserID stores the authenticated user id and tags the request logger
// with it.
func WithUserID(ctx context.Context, userID int64) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	if l := logging.FromContext(ctx, nil); l != nil {
		ctx = logging.NewContext(ctx, l.WithUser(userID))
	}
	return ctx
}

func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}

func UsernameFromContext(ctx context.Context) string {
	name, _ := ctx.Value(usernameKey).(string)
	return name
}

func IsSuperAdmin(ctx context.Context) bool {
	superAdmin, _ := ctx.Value(superAdminKey).(bool)
	return superAdmin
}

// WithSuperAdmin marks the request as coming from a super admin.
func WithSuperAdmin(ctx context.Context) context.Context {
	return context.WithValue(ctx, superAdminKey, true)
}

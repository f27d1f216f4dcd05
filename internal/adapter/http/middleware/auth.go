package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/Abdurahmanit/GroupProject/agrilink-service/internal/platform/logger"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// Claims is the token payload issued by the identity provider.
type Claims struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	jwt.RegisteredClaims
}

// JWTAuth authenticates optional bearer tokens. Requests without an Authorization header pass
// through anonymously; a header that does not carry a valid HMAC token is rejected with 401.
// An empty secret disables authentication entirely.
func JWTAuth(jwtSecret string, log *logger.Logger) func(http.Handler) http.Handler {
	log = log.Named("JWTAuth")
	return func(next http.Handler) http.Handler {
		if jwtSecret == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}

			parts := strings.Fields(authHeader)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				log.Warn("Invalid authorization header format", zap.String("path", r.URL.Path))
				unauthorized(w, "authorization token format is invalid, expected 'Bearer <token>'")
				return
			}

			claims, err := ParseToken(parts[1], jwtSecret)
			if err != nil {
				log.Warn("Token validation failed", zap.String("path", r.URL.Path), zap.Error(err))
				if errors.Is(err, jwt.ErrTokenExpired) {
					unauthorized(w, "token has expired")
					return
				}
				unauthorized(w, "token is invalid")
				return
			}

			log.Debug("Request authenticated", zap.String("user_id", claims.UserID))
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), claims.UserID, claims.Name)))
		})
	}
}

// ParseToken validates an HMAC-signed token and returns its claims.
func ParseToken(tokenString, secret string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("token is not valid")
	}
	if claims.UserID == "" {
		return nil, errors.New("user_id not found in token claims")
	}
	return claims, nil
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

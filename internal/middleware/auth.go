package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/feedline-dev/feedline/internal/domain"
	jwt_internal "github.com/feedline-dev/feedline/internal/jwt"
	"github.com/feedline-dev/feedline/internal/logger"
	"github.com/feedline-dev/feedline/internal/utils"
)

// Key to store the user claims in the request context
type key int

const userClaimsKey key = 0

// NeedAuth resolves the bearer token into a user and stores it in the
// request context. Everything behind it can trust that user completely.
func NeedAuth(jwtService jwt_internal.JwtService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "Not authenticated", http.StatusUnauthorized)
				return
			}
			tokenStr, found := strings.CutPrefix(authHeader, "Bearer ")
			if !found {
				http.Error(w, "Invalid Authorization header", http.StatusUnauthorized)
				return
			}

			token, err := jwtService.DecodeToken(tokenStr)
			if err != nil {
				utils.WriteErrorAndStatusCode(w, err)
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				http.Error(w, "Invalid access token", http.StatusUnauthorized)
				return
			}

			userId, userIdOk := claims["userId"].(float64)
			email, emailOk := claims["email"].(string)
			if !userIdOk || !emailOk {
				logger.Log.Warn("token with malformed claims", "claims", claims)
				http.Error(w, "Invalid access token", http.StatusUnauthorized)
				return
			}

			user := &domain.User{
				Id:    int64(userId),
				Email: email,
			}

			ctx := context.WithValue(r.Context(), userClaimsKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserFromContext retrieves the authenticated user, or nil when the
// request did not pass through NeedAuth.
func GetUserFromContext(r *http.Request) *domain.User {
	user, ok := r.Context().Value(userClaimsKey).(*domain.User)
	if !ok {
		return nil
	}
	return user
}

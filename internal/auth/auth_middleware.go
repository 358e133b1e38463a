package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/sebuszqo/FinanceTracker/internal/user"
)

// JWTAccessTokenMiddleware rejects requests without a valid bearer token and
// stores the token's user id in the request context.
func (s *service) JWTAccessTokenMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				s.respondError(w, http.StatusUnauthorized, "Authorization header is required")
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader || tokenString == "" {
				s.respondError(w, http.StatusUnauthorized, "Invalid token format")
				return
			}

			userID, err := s.jwtManager.ValidateAccessToken(tokenString)
			if err != nil {
				if errors.Is(err, ErrExpiredJWTToken) {
					s.respondError(w, http.StatusUnauthorized, ErrExpiredJWTToken.Error())
					return
				}
				s.respondError(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			if _, err = s.userService.GetUserByID(r.Context(), userID); err != nil {
				if errors.Is(err, user.ErrUserNotFound) {
					s.respondError(w, http.StatusUnauthorized, user.ErrUserNotFound.Error())
					return
				}
				s.logger.Error("failed to load token owner", slog.String("error", err.Error()))
				s.respondError(w, http.StatusInternalServerError, ErrInternalError.Error())
				return
			}

			next.ServeHTTP(w, r.WithContext(user.NewContext(r.Context(), userID)))
		})
	}
}

package middleware

import (
	"context"
	"net/http"
	"strings"

	"planetarium-booking/internal/data/entity"
	"planetarium-booking/pkg/utils"

	"go.uber.org/zap"
)

// Authenticator resolves a bearer token to a user. A nil user with a nil
// error means the token is not valid.
type Authenticator interface {
	Authenticate(ctx context.Context, accessToken string) (*entity.User, error)
}

// Auth validates the bearer token and stores the user in the request context.
func Auth(auth Authenticator, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.ResponseUnauthorized(w, "Authentication credentials were not provided")
				return
			}

			scheme, token, found := strings.Cut(authHeader, " ")
			if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				return
			}

			user, err := auth.Authenticate(r.Context(), strings.TrimSpace(token))
			if err != nil {
				logger.Error("Failed to authenticate request", zap.Error(err))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}

			if user == nil {
				logger.Warn("Invalid or expired token", zap.String("path", r.URL.Path))
				utils.ResponseUnauthorized(w, "Given token not valid for any token type")
				return
			}

			ctx := utils.SetUserContext(r.Context(), user.ID, user.IsStaff)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminOrReadOnly lets everyone authenticated read; writes need a staff account.
func AdminOrReadOnly(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := utils.GetUserIDFromContext(r.Context()); !ok {
				utils.ResponseUnauthorized(w, "Authentication credentials were not provided")
				return
			}

			if isSafeMethod(r.Method) || utils.IsStaffFromContext(r.Context()) {
				next.ServeHTTP(w, r)
				return
			}

			userID, _ := utils.GetUserIDFromContext(r.Context())
			logger.Warn("Write attempt by non-staff user",
				zap.Int64("user_id", userID),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
			)
			utils.ResponseForbidden(w, "You do not have permission to perform this action")
		})
	}
}

// Admin requires a staff account for every method.
func Admin(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := utils.GetUserIDFromContext(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "Authentication credentials were not provided")
				return
			}

			if !utils.IsStaffFromContext(r.Context()) {
				logger.Warn("Admin check: non-staff access attempt",
					zap.Int64("user_id", userID),
					zap.String("path", r.URL.Path))
				utils.ResponseForbidden(w, "You do not have permission to perform this action")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

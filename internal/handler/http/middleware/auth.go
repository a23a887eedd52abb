package middleware

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/payroll-backend-go/internal/handler/http/response"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// AuthRequired accepts only verified access tokens that name a user, and tags
// the request log line with that user and role.
func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}
			if token == nil {
				response.HandleError(w, user.ErrInvalidToken)
				return
			}

			if tokenType, _ := claims["type"].(string); tokenType != "access" {
				response.HandleError(w, user.ErrInvalidToken)
				return
			}
			userID, _ := claims["user_id"].(string)
			if userID == "" {
				response.HandleError(w, user.ErrInvalidToken)
				return
			}

			role, _ := claims["role"].(string)
			httplog.SetAttrs(r.Context(), slog.String("user.id", userID), slog.String("user.role", role))

			next.ServeHTTP(w, r)
		})
	}
}

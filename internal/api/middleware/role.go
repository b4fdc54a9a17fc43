package middleware

import (
	"net/http"

	"github.com/adityanarayanofficial/marketplace-platform/internal/errors"
	models "github.com/adityanarayanofficial/marketplace-platform/internal/models"
	"github.com/adityanarayanofficial/marketplace-platform/internal/utils/response"
)

// RequireRole gates a handler behind a set of roles. It must sit inside
// Authenticate, which puts the claims on the context. Centralizing the
// check here keeps the per-handler permission logic out of the handlers.
func RequireRole(roles ...models.Role) func(http.Handler) http.HandlerFunc {
	return func(next http.Handler) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {

			claims, ok := ClaimsFromContext(r.Context())

			if !ok {
				response.Error(w, errors.AuthError("Authentication required"))
				return
			}

			for _, role := range roles {
				if claims.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			LoggerFromContext(r.Context()).Warn("Insufficient role for operation")
			response.Error(w, errors.PermissionError("You do not have permission to perform this action"))

		}
	}
}

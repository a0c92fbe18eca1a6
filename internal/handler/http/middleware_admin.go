package http

import (
	"net/http"

	"github.com/clinicore/clinic-registry/internal/logger"
	"github.com/clinicore/clinic-registry/internal/utils"
)

// adminOnly gates a route behind the admin role. It must run after the auth
// middleware, which places the resolved identity in the request context.
//
// A request whose identity is missing from the context is rejected with 401;
// an authenticated caller without the admin role is rejected with 403.
func (h *Handler) adminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		user, ok := utils.GetUserFromContext(r.Context())
		if !ok {
			log.Error().Msg("no identity found in request context")
			utils.WriteError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}

		if !user.IsAdmin() {
			log.Err(ErrAdminRequired).Str("id", user.ID).Str("role", user.Role).Send()
			utils.WriteError(w, ErrAdminRequired.Error(), http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}

package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/littlesprouts/daycare-backend-go/internal/handler/http/response"
)

// AdminRequired gates the mutating payroll surface: period creation, batch
// runs and closes need the admin role claim.
func AdminRequired() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			_, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			role, ok := claims["role"].(string)
			if !ok || role != "admin" {
				response.Forbidden(w, "Admin role required")
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}

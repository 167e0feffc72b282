package middleware

import (
	"net/http"

	"hrms/internal/domain/auth"
	"hrms/internal/transport/http/api"
)

// Require gates a route on a policy action with no self-scope target.
// Routes where the target employee matters check auth.Can in the handler
// once the target is known.
func Require(action auth.Action) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := GetActor(r.Context())
			if !ok {
				api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", GetRequestID(r.Context()))
				return
			}
			if !auth.Can(actor, action, 0) {
				api.Fail(w, http.StatusForbidden, "forbidden", "insufficient permissions", GetRequestID(r.Context()))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/adikrishnan/expense-ledger/internal"
)

// OwnerScope attaches the deployment's owner identity to every request.
// The ledger serves a single fixed user, but handlers and services only
// ever see the context value, so swapping this middleware for one that
// resolves the owner per request is all multi-tenancy would need.
func OwnerScope(ownerID uuid.UUID) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := internal.ContextWithOwner(r.Context(), ownerID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Package adminonly restricts routes to users with the admin role.
package adminonly

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/corray333/backend-labs/grocery/internal/service/errs"
	"github.com/corray333/backend-labs/grocery/internal/service/models/user"
	"github.com/corray333/backend-labs/grocery/internal/transport/http/response"
	"github.com/pkg/errors"
)

// UserIDHeader carries the id of the authenticated caller.
const UserIDHeader = "X-User-ID"

type service interface {
	GetUser(ctx context.Context, id int64) (*user.User, error)
}

type ctxKey struct{}

// UserFromContext returns the admin resolved by the middleware.
func UserFromContext(ctx context.Context) (*user.User, bool) {
	u, ok := ctx.Value(ctxKey{}).(*user.User)
	return u, ok
}

// New returns middleware admitting only admins.
func New(service service) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := strconv.ParseInt(r.Header.Get(UserIDHeader), 10, 64)
			if err != nil || id <= 0 {
				response.JSON(w, http.StatusUnauthorized, response.Message{Message: "Unauthorized"})

				return
			}

			caller, err := service.GetUser(r.Context(), id)
			switch {
			case errors.Is(err, errs.ErrUserNotFound):
				response.JSON(w, http.StatusUnauthorized, response.Message{Message: "User not found"})

				return
			case err != nil:
				slog.ErrorContext(r.Context(), "Error checking user role", "error", err)
				response.JSON(w, http.StatusInternalServerError, response.Message{Message: "Internal server error"})

				return
			}

			if !caller.IsAdmin() {
				response.JSON(w, http.StatusForbidden, response.Message{Message: "Forbidden: User is not an admin"})

				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, caller)))
		})
	}
}

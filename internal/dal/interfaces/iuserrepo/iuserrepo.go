package iuserrepo

import (
	"context"

	"github.com/corray333/backend-labs/grocery/internal/service/models/user"
)

// IUserRepository is an interface for user repository.
type IUserRepository interface {
	FindByID(ctx context.Context, id int64) (*user.User, error)
}

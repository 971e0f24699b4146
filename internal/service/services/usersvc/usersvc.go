package usersvc

import (
	"context"

	"github.com/corray333/backend-labs/grocery/internal/dal/uow"
	"github.com/corray333/backend-labs/grocery/internal/service/errs"
	"github.com/corray333/backend-labs/grocery/internal/service/models/user"
	"go.opentelemetry.io/otel"
)

// UserService resolves callers for access checks.
type UserService struct {
	newUOW uow.Factory
}

// option is a function that configures the UserService.
type option func(*UserService)

// MustNewUserService creates a new UserService.
func MustNewUserService(opts ...option) *UserService {
	s := &UserService{}
	for _, opt := range opts {
		opt(s)
	}

	if s.newUOW == nil {
		panic("usersvc: unit of work factory is required")
	}

	return s
}

// WithUnitOfWork sets the unit of work factory for the UserService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithUnitOfWork(factory uow.Factory) option {
	return func(s *UserService) {
		s.newUOW = factory
	}
}

// GetUser returns the user or errs.ErrUserNotFound.
func (s *UserService) GetUser(ctx context.Context, id int64) (*user.User, error) {
	ctx, span := otel.Tracer("service").Start(ctx, "UserService.GetUser")
	defer span.End()

	found, err := s.newUOW().UserRepository().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, errs.ErrUserNotFound
	}

	return found, nil
}

package uow

import (
	"context"
	"useradmin/internal/core/domain/company"
	"useradmin/internal/core/domain/user"
)

type Context interface {
	Rollback(ctx context.Context) error
	Commit(ctx context.Context) error

	Users() user.UserRepository
	Companies() company.Repository
}

type UnitOfWork interface {
	Begin(ctx context.Context) (Context, error)
}

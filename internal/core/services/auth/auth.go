package auth

import (
	"context"
	e "useradmin/internal/core/domain/errors"
	"useradmin/internal/core/domain/user"
	"useradmin/internal/core/services"
)

type contextAuthToken string

const CONTEXT_AUTH_TOKEN_KEY = contextAuthToken("authToken")

type service[T any, S any] struct {
	sessionRepository user.SessionRepository
	inner             services.Service[T, S]
}

// WithAuthentication runs the wrapped service only if the request
// context carries a session token that resolves to a user.
func WithAuthentication[T any, S any](
	sessionRepository user.SessionRepository,
	inner services.Service[T, S],
) services.Service[T, S] {
	if sessionRepository == nil {
		panic(e.NewNilArgumentError("sessionRepository"))
	}
	if inner == nil {
		panic(e.NewNilArgumentError("inner"))
	}
	return &service[T, S]{
		sessionRepository: sessionRepository,
		inner:             inner,
	}
}

func (s *service[T, S]) Run(ctx context.Context, input T) (result S, err error) {
	authToken, ok := ctx.Value(CONTEXT_AUTH_TOKEN_KEY).(user.SessionToken)
	if !ok {
		return result, user.ErrSessionDoesNotExist
	}
	if _, err := s.sessionRepository.GetUserByToken(ctx, authToken); err != nil {
		return result, err
	}
	return s.inner.Run(ctx, input)
}

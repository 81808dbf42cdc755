package deleteuser

import (
	"context"
	"errors"
	e "useradmin/internal/core/domain/errors"
	"useradmin/internal/core/domain/logging"
	"useradmin/internal/core/domain/user"
	"useradmin/internal/core/services"
)

type Input struct {
	ID user.ID
}

type Result struct{}

type service struct {
	log            logging.Logger
	userRepository user.UserRepository
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	return &service{
		log:            log,
		userRepository: userRepository,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	err = s.userRepository.Delete(ctx, input.ID)
	if errors.Is(err, user.ErrUserDoesNotExist) {
		return result, err
	}
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userID", input.ID))
		return result, err
	}
	s.log.Info(ctx, "User has been deleted.", logging.Entry("userID", input.ID))
	return result, nil
}

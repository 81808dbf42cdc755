package setpassword

import (
	"context"
	"errors"
	"time"
	e "useradmin/internal/core/domain/errors"
	"useradmin/internal/core/domain/logging"
	"useradmin/internal/core/domain/user"
	"useradmin/internal/core/services"
)

type Input struct {
	Token       user.SetPasswordToken
	NewPassword user.RawPassword
}

type Result struct {
	User user.User
}

type service struct {
	log            logging.Logger
	userRepository user.UserRepository
	passwordHasher user.PasswordHasher
	now            func() time.Time
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	passwordHasher user.PasswordHasher,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if passwordHasher == nil {
		panic(e.NewNilArgumentError("passwordHasher"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:            log,
		userRepository: userRepository,
		passwordHasher: passwordHasher,
		now:            now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	u, err := s.userRepository.GetBySetPasswordToken(ctx, input.Token)
	if errors.Is(err, user.ErrTokenDoesNotExist) {
		return result, err
	}
	if err != nil {
		logging.Error(ctx, s.log, err)
		return result, err
	}

	now := s.now()
	if u.SetPasswordTokenExpiry.IsPresent && now.After(u.SetPasswordTokenExpiry.Value) {
		// Clearing an expired token is a real transition: the next
		// attempt with the same token must fail with token-not-found.
		err = s.userRepository.ClearSetPasswordToken(ctx, input.Token, now)
		if err != nil && !errors.Is(err, user.ErrTokenDoesNotExist) {
			logging.Error(ctx, s.log, err, logging.Entry("userID", u.ID))
			return result, err
		}
		s.log.Info(
			ctx,
			"Set-password token has expired and has been cleared.",
			logging.Entry("userID", u.ID),
		)
		return result, user.ErrTokenExpired
	}

	passwordHash, err := s.passwordHasher.HashPassword(input.NewPassword)
	if err != nil {
		s.log.Error(ctx, "Could not hash password.", logging.Entry("err", err))
		return result, err
	}

	// Conditional on the token still being set, so a concurrent
	// consumption of the same token succeeds at most once.
	updatedUser, err := s.userRepository.ConsumeSetPasswordToken(ctx, user.ConsumeSetPasswordTokenInput{
		Token:        input.Token,
		PasswordHash: passwordHash,
		At:           now,
	})
	if errors.Is(err, user.ErrTokenDoesNotExist) {
		return result, err
	}
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userID", u.ID))
		return result, err
	}

	s.log.Info(
		ctx,
		"Password has been set, email verified.",
		logging.Entry("userID", updatedUser.ID),
	)
	return Result{User: updatedUser}, nil
}

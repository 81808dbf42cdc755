package sendpasswordresettoken

import (
	"context"
	"errors"
	"time"
	c "useradmin/internal/core/domain/common"
	e "useradmin/internal/core/domain/errors"
	"useradmin/internal/core/domain/logging"
	"useradmin/internal/core/domain/user"
	"useradmin/internal/core/services"
)

type Input struct {
	Email c.Email
}

// Result is identical whether or not the email belongs to a user, so
// the caller cannot enumerate accounts.
type Result struct{}

type service struct {
	log                         logging.Logger
	userRepository              user.UserRepository
	resetPasswordTokenGenerator user.ResetPasswordTokenGenerator
	sender                      user.PasswordResetTokenSender
	now                         func() time.Time
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	resetPasswordTokenGenerator user.ResetPasswordTokenGenerator,
	sender user.PasswordResetTokenSender,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if resetPasswordTokenGenerator == nil {
		panic(e.NewNilArgumentError("resetPasswordTokenGenerator"))
	}
	if sender == nil {
		panic(e.NewNilArgumentError("sender"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:                         log,
		userRepository:              userRepository,
		resetPasswordTokenGenerator: resetPasswordTokenGenerator,
		sender:                      sender,
		now:                         now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	u, err := s.userRepository.GetByEmail(ctx, input.Email)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrUserDoesNotExist) {
		s.log.Info(
			ctx,
			"Password reset requested for unknown email.",
			logging.Entry("email", input.Email),
		)
		return result, nil
	}
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("email", input.Email))
		return result, err
	}

	now := s.now()
	u, err = s.userRepository.SetResetPasswordToken(ctx, user.SetResetPasswordTokenInput{
		ID:        u.ID,
		Token:     s.resetPasswordTokenGenerator.GenerateResetPasswordToken(),
		ExpiresAt: now.Add(user.ResetPasswordTokenValidDuration),
		At:        now,
	})
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userID", u.ID))
		return result, err
	}
	s.log.Info(ctx, "Reset-password token generated.", logging.Entry("userID", u.ID))

	// Best effort: the token is durably persisted, a failed delivery
	// only loses the email, not the ability to reset.
	err = s.sender.SendPasswordResetToken(ctx, u)
	if err != nil && !errors.Is(err, context.Canceled) {
		s.log.Error(
			ctx,
			"Could not send password reset token.",
			logging.Entry("userID", u.ID),
			logging.Entry("err", err),
		)
	}
	return result, nil
}

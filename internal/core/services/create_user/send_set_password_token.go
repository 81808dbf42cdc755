package createuser

import (
	"context"
	"errors"
	e "useradmin/internal/core/domain/errors"
	"useradmin/internal/core/domain/logging"
	"useradmin/internal/core/domain/user"
	"useradmin/internal/core/services"
)

type serviceWithSetPasswordTokenSending struct {
	log    logging.Logger
	sender user.SetPasswordTokenSender
	inner  services.Service[Input, Result]
}

// NewWithSetPasswordTokenSending decorates user creation with
// best-effort delivery of the set-password link. A delivery failure is
// logged and swallowed: the user and the token are already persisted,
// so the account is not rolled back and the token stays valid.
func NewWithSetPasswordTokenSending(
	log logging.Logger,
	sender user.SetPasswordTokenSender,
	inner services.Service[Input, Result],
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if sender == nil {
		panic(e.NewNilArgumentError("sender"))
	}
	if inner == nil {
		panic(e.NewNilArgumentError("inner"))
	}
	return &serviceWithSetPasswordTokenSending{
		log:    log,
		sender: sender,
		inner:  inner,
	}
}

func (s *serviceWithSetPasswordTokenSending) Run(ctx context.Context, input Input) (result Result, err error) {
	result, err = s.inner.Run(ctx, input)
	if err != nil {
		return result, err
	}

	err = s.sender.SendSetPasswordToken(ctx, result.User)
	if errors.Is(err, context.Canceled) {
		return result, nil
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not send set-password token.",
			logging.Entry("userID", result.User.ID),
			logging.Entry("email", result.User.Email),
			logging.Entry("err", err),
		)
		return result, nil
	}

	s.log.Info(
		ctx,
		"Set-password token has been sent to the user.",
		logging.Entry("userID", result.User.ID),
		logging.Entry("email", result.User.Email),
	)
	return result, nil
}

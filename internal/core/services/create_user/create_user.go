package createuser

import (
	"context"
	"errors"
	"time"
	c "useradmin/internal/core/domain/common"
	"useradmin/internal/core/domain/company"
	e "useradmin/internal/core/domain/errors"
	"useradmin/internal/core/domain/logging"
	uow "useradmin/internal/core/domain/unit_of_work"
	"useradmin/internal/core/domain/user"
	"useradmin/internal/core/services"
)

type Input struct {
	Username              string
	Email                 c.Email
	PrivacyPolicyAccepted bool
	Role                  user.Role
	CompanyID             c.Optional[company.ID]
}

type Result struct {
	User user.User
}

type service struct {
	log                       logging.Logger
	unitOfWork                uow.UnitOfWork
	setPasswordTokenGenerator user.SetPasswordTokenGenerator
	now                       func() time.Time
}

func New(
	log logging.Logger,
	unitOfWork uow.UnitOfWork,
	setPasswordTokenGenerator user.SetPasswordTokenGenerator,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if unitOfWork == nil {
		panic(e.NewNilArgumentError("unitOfWork"))
	}
	if setPasswordTokenGenerator == nil {
		panic(e.NewNilArgumentError("setPasswordTokenGenerator"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:                       log,
		unitOfWork:                unitOfWork,
		setPasswordTokenGenerator: setPasswordTokenGenerator,
		now:                       now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	if input.Role.RequiresCompany() && !input.CompanyID.IsPresent {
		return result, user.ErrCompanyRequired
	}

	uow, err := s.unitOfWork.Begin(ctx)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not begin unit of work.",
			logging.Entry("input", input),
			logging.Entry("err", err),
		)
		return result, err
	}
	defer uow.Rollback(ctx)

	if input.CompanyID.IsPresent {
		exists, err := uow.Companies().Exists(ctx, input.CompanyID.Value)
		if err != nil {
			logging.Error(ctx, s.log, err, logging.Entry("companyID", input.CompanyID.Value))
			return result, err
		}
		if !exists {
			return result, company.ErrCompanyDoesNotExist
		}
	}

	now := s.now()
	createdUser, err := uow.Users().Create(ctx, user.CreateUserInput{
		Username:               input.Username,
		Email:                  input.Email,
		PrivacyPolicyAccepted:  input.PrivacyPolicyAccepted,
		Role:                   input.Role,
		CompanyID:              input.CompanyID,
		SetPasswordToken:       c.NewOptional(s.setPasswordTokenGenerator.GenerateSetPasswordToken(), true),
		SetPasswordTokenExpiry: c.NewOptional(now.Add(user.SetPasswordTokenValidDuration), true),
		CreatedAt:              now,
	})
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrUsernameAlreadyExists) || errors.Is(err, user.ErrEmailAlreadyExists) {
		s.log.Info(
			ctx,
			"User with the username or email already exists.",
			logging.Entry("username", input.Username),
			logging.Entry("email", input.Email),
		)
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not create new user.",
			logging.Entry("input", input),
			logging.Entry("err", err),
		)
		return result, err
	}

	if err := uow.Commit(ctx); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}

	s.log.Info(ctx, "New user has been created.", logging.Entry("user", createdUser))
	return Result{User: createdUser}, nil
}

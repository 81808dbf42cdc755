package updateuser

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
	ID                    user.ID
	Email                 c.Optional[c.Email]
	Role                  c.Optional[user.Role]
	CompanyID             c.Optional[company.ID]
	RemoveCompany         bool
	PrivacyPolicyAccepted c.Optional[bool]
	// NewPassword lets an administrator force-set a password; any
	// pending set-password token is invalidated by the update.
	NewPassword c.Optional[user.RawPassword]
}

type Result struct {
	User user.User
}

type service struct {
	log            logging.Logger
	unitOfWork     uow.UnitOfWork
	passwordHasher user.PasswordHasher
	now            func() time.Time
}

func New(
	log logging.Logger,
	unitOfWork uow.UnitOfWork,
	passwordHasher user.PasswordHasher,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if unitOfWork == nil {
		panic(e.NewNilArgumentError("unitOfWork"))
	}
	if passwordHasher == nil {
		panic(e.NewNilArgumentError("passwordHasher"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:            log,
		unitOfWork:     unitOfWork,
		passwordHasher: passwordHasher,
		now:            now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	uow, err := s.unitOfWork.Begin(ctx)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}
	defer uow.Rollback(ctx)

	existing, err := uow.Users().GetByID(ctx, input.ID)
	if errors.Is(err, user.ErrUserDoesNotExist) {
		return result, err
	}
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userID", input.ID))
		return result, err
	}

	targetRole := existing.Role
	if input.Role.IsPresent {
		targetRole = input.Role.Value
	}
	targetCompanyID := existing.CompanyID

	updateInput := user.UpdateUserInput{ID: input.ID, At: s.now()}

	if input.RemoveCompany {
		if targetRole.RequiresCompany() {
			return result, user.ErrCompanyRequired
		}
		updateInput.DoCompanyIDUpdate = true
		updateInput.CompanyID = c.NewOptional(company.ID(0), false)
		targetCompanyID = updateInput.CompanyID
	} else if input.CompanyID.IsPresent {
		exists, err := uow.Companies().Exists(ctx, input.CompanyID.Value)
		if err != nil {
			logging.Error(ctx, s.log, err, logging.Entry("companyID", input.CompanyID.Value))
			return result, err
		}
		if !exists {
			return result, company.ErrCompanyDoesNotExist
		}
		updateInput.DoCompanyIDUpdate = true
		updateInput.CompanyID = c.NewOptional(input.CompanyID.Value, true)
		targetCompanyID = updateInput.CompanyID
	}

	if input.Role.IsPresent {
		if targetRole.RequiresCompany() && !targetCompanyID.IsPresent {
			return result, user.ErrCompanyRequired
		}
		updateInput.DoRoleUpdate = true
		updateInput.Role = targetRole
	}

	if input.Email.IsPresent {
		updateInput.DoEmailUpdate = true
		updateInput.Email = input.Email.Value
	}

	if input.PrivacyPolicyAccepted.IsPresent {
		updateInput.DoPrivacyPolicyUpdate = true
		updateInput.PrivacyPolicyAccepted = input.PrivacyPolicyAccepted.Value
	}

	if input.NewPassword.IsPresent {
		passwordHash, err := s.passwordHasher.HashPassword(input.NewPassword.Value)
		if err != nil {
			s.log.Error(ctx, "Could not hash password.", logging.Entry("err", err))
			return result, err
		}
		updateInput.DoPasswordHashUpdate = true
		updateInput.PasswordHash = passwordHash
	}

	updatedUser, err := uow.Users().Update(ctx, updateInput)
	if errors.Is(err, user.ErrEmailAlreadyExists) || errors.Is(err, user.ErrUserDoesNotExist) {
		return result, err
	}
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userID", input.ID))
		return result, err
	}

	if err := uow.Commit(ctx); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userID", input.ID))
		return result, err
	}

	s.log.Info(ctx, "User has been updated.", logging.Entry("userID", updatedUser.ID))
	return Result{User: updatedUser}, nil
}

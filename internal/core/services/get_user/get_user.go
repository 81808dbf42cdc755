package getuser

import (
	"context"
	"errors"
	c "useradmin/internal/core/domain/common"
	"useradmin/internal/core/domain/company"
	e "useradmin/internal/core/domain/errors"
	"useradmin/internal/core/domain/logging"
	"useradmin/internal/core/domain/user"
	"useradmin/internal/core/services"
)

type Input struct {
	ID user.ID
}

type Result struct {
	User        user.User
	CompanyName c.Optional[string]
}

type service struct {
	log               logging.Logger
	userRepository    user.UserRepository
	companyRepository company.Repository
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	companyRepository company.Repository,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if companyRepository == nil {
		panic(e.NewNilArgumentError("companyRepository"))
	}
	return &service{
		log:               log,
		userRepository:    userRepository,
		companyRepository: companyRepository,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	u, err := s.userRepository.GetByID(ctx, input.ID)
	if errors.Is(err, user.ErrUserDoesNotExist) {
		return result, err
	}
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userID", input.ID))
		return result, err
	}

	result.User = u
	if u.CompanyID.IsPresent {
		comp, err := s.companyRepository.GetByID(ctx, u.CompanyID.Value)
		if err == nil {
			result.CompanyName = c.NewOptional(comp.Name, true)
		} else if !errors.Is(err, company.ErrCompanyDoesNotExist) {
			logging.Error(ctx, s.log, err, logging.Entry("companyID", u.CompanyID.Value))
			return result, err
		}
	}
	return result, nil
}

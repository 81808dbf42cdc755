package getcompany

import (
	"context"
	"errors"
	"useradmin/internal/core/domain/company"
	e "useradmin/internal/core/domain/errors"
	"useradmin/internal/core/domain/logging"
	"useradmin/internal/core/services"
)

type Input struct {
	ID company.ID
}

type Result struct {
	Company company.Company
}

type service struct {
	log               logging.Logger
	companyRepository company.Repository
}

func New(
	log logging.Logger,
	companyRepository company.Repository,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if companyRepository == nil {
		panic(e.NewNilArgumentError("companyRepository"))
	}
	return &service{
		log:               log,
		companyRepository: companyRepository,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	comp, err := s.companyRepository.GetByID(ctx, input.ID)
	if errors.Is(err, company.ErrCompanyDoesNotExist) {
		return result, err
	}
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("companyID", input.ID))
		return result, err
	}
	return Result{Company: comp}, nil
}

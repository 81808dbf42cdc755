package listcompanies

import (
	"context"
	"useradmin/internal/core/domain/company"
	e "useradmin/internal/core/domain/errors"
	"useradmin/internal/core/domain/logging"
	"useradmin/internal/core/services"
)

type Input struct{}

type Result struct {
	Companies []company.Company
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
	companies, err := s.companyRepository.List(ctx)
	if err != nil {
		logging.Error(ctx, s.log, err)
		return result, err
	}
	return Result{Companies: companies}, nil
}

package createcompany

import (
	"context"
	"errors"
	"time"
	"useradmin/internal/core/domain/company"
	e "useradmin/internal/core/domain/errors"
	"useradmin/internal/core/domain/logging"
	"useradmin/internal/core/services"
)

type Input struct {
	Name string
}

type Result struct {
	Company company.Company
}

type service struct {
	log               logging.Logger
	companyRepository company.Repository
	now               func() time.Time
}

func New(
	log logging.Logger,
	companyRepository company.Repository,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if companyRepository == nil {
		panic(e.NewNilArgumentError("companyRepository"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:               log,
		companyRepository: companyRepository,
		now:               now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	createdCompany, err := s.companyRepository.Create(ctx, company.CreateInput{
		Name:      input.Name,
		CreatedAt: s.now(),
	})
	if errors.Is(err, company.ErrCompanyNameAlreadyExists) {
		s.log.Info(ctx, "Company name already exists.", logging.Entry("name", input.Name))
		return result, err
	}
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("name", input.Name))
		return result, err
	}
	s.log.Info(ctx, "New company has been created.", logging.Entry("companyID", createdCompany.ID))
	return Result{Company: createdCompany}, nil
}

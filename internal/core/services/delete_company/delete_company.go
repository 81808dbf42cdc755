package deletecompany

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

type Result struct{}

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

// Run deletes the company. Users associated with it keep existing,
// their company reference is nulled out by the storage layer.
func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	err = s.companyRepository.Delete(ctx, input.ID)
	if errors.Is(err, company.ErrCompanyDoesNotExist) {
		return result, err
	}
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("companyID", input.ID))
		return result, err
	}
	s.log.Info(ctx, "Company has been deleted.", logging.Entry("companyID", input.ID))
	return result, nil
}

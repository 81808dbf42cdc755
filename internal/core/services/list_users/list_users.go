package listusers

import (
	"context"
	c "useradmin/internal/core/domain/common"
	"useradmin/internal/core/domain/company"
	e "useradmin/internal/core/domain/errors"
	"useradmin/internal/core/domain/logging"
	"useradmin/internal/core/domain/user"
	"useradmin/internal/core/services"
)

type Input struct{}

type UserView struct {
	User        user.User
	CompanyName c.Optional[string]
}

type Result struct {
	Users []UserView
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
	users, err := s.userRepository.List(ctx)
	if err != nil {
		logging.Error(ctx, s.log, err)
		return result, err
	}

	companies, err := s.companyRepository.List(ctx)
	if err != nil {
		logging.Error(ctx, s.log, err)
		return result, err
	}
	nameByID := make(map[company.ID]string, len(companies))
	for _, c := range companies {
		nameByID[c.ID] = c.Name
	}

	views := make([]UserView, 0, len(users))
	for _, u := range users {
		view := UserView{User: u}
		if u.CompanyID.IsPresent {
			name, ok := nameByID[u.CompanyID.Value]
			view.CompanyName = c.NewOptional(name, ok)
		}
		views = append(views, view)
	}
	return Result{Users: views}, nil
}

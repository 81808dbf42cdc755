package services

import (
	"useradmin/internal/app/deps"
	"useradmin/internal/core/services"
	"useradmin/internal/core/services/auth"
	createcompany "useradmin/internal/core/services/create_company"
	createuser "useradmin/internal/core/services/create_user"
	deletecompany "useradmin/internal/core/services/delete_company"
	deleteuser "useradmin/internal/core/services/delete_user"
	getcompany "useradmin/internal/core/services/get_company"
	getuser "useradmin/internal/core/services/get_user"
	getuserbysessiontoken "useradmin/internal/core/services/get_user_by_session_token"
	listcompanies "useradmin/internal/core/services/list_companies"
	listusers "useradmin/internal/core/services/list_users"
	login "useradmin/internal/core/services/log_in"
	logout "useradmin/internal/core/services/log_out"
	resetpassword "useradmin/internal/core/services/reset_password"
	sendpasswordresettoken "useradmin/internal/core/services/send_password_reset_token"
	setpassword "useradmin/internal/core/services/set_password"
	updatecompany "useradmin/internal/core/services/update_company"
	updateuser "useradmin/internal/core/services/update_user"
)

type Services struct {
	LogIn                  services.Service[login.Input, login.Result]
	LogOut                 services.Service[logout.Input, logout.Result]
	GetUserBySessionToken  services.Service[getuserbysessiontoken.Input, getuserbysessiontoken.Result]
	SetPassword            services.Service[setpassword.Input, setpassword.Result]
	SendPasswordResetToken services.Service[sendpasswordresettoken.Input, sendpasswordresettoken.Result]
	ResetPassword          services.Service[resetpassword.Input, resetpassword.Result]

	CreateUser services.Service[createuser.Input, createuser.Result]
	ListUsers  services.Service[listusers.Input, listusers.Result]
	GetUser    services.Service[getuser.Input, getuser.Result]
	UpdateUser services.Service[updateuser.Input, updateuser.Result]
	DeleteUser services.Service[deleteuser.Input, deleteuser.Result]

	CreateCompany services.Service[createcompany.Input, createcompany.Result]
	ListCompanies services.Service[listcompanies.Input, listcompanies.Result]
	GetCompany    services.Service[getcompany.Input, getcompany.Result]
	UpdateCompany services.Service[updatecompany.Input, updatecompany.Result]
	DeleteCompany services.Service[deletecompany.Input, deletecompany.Result]
}

func InitServices(deps *deps.Deps) *Services {
	s := &Services{}

	s.LogIn = login.New(
		deps.Logger,
		deps.UserRepository,
		deps.SessionRepository,
		deps.PasswordHasher,
		deps.SessionTokenGenerator,
		deps.Now,
	)
	s.LogOut = logout.New(
		deps.Logger,
		deps.SessionRepository,
	)
	s.GetUserBySessionToken = getuserbysessiontoken.New(
		deps.Logger,
		deps.SessionRepository,
	)
	s.SetPassword = setpassword.New(
		deps.Logger,
		deps.UserRepository,
		deps.PasswordHasher,
		deps.Now,
	)
	s.SendPasswordResetToken = sendpasswordresettoken.New(
		deps.Logger,
		deps.UserRepository,
		deps.ResetPasswordTokenGenerator,
		deps.PasswordResetTokenSender,
		deps.Now,
	)
	s.ResetPassword = resetpassword.New(
		deps.Logger,
		deps.UserRepository,
		deps.PasswordHasher,
		deps.Now,
	)

	s.CreateUser = auth.WithAuthentication(
		deps.SessionRepository,
		createuser.NewWithSetPasswordTokenSending(
			deps.Logger,
			deps.SetPasswordTokenSender,
			createuser.New(
				deps.Logger,
				deps.UnitOfWork,
				deps.SetPasswordTokenGenerator,
				deps.Now,
			),
		),
	)
	s.ListUsers = auth.WithAuthentication(
		deps.SessionRepository,
		listusers.New(deps.Logger, deps.UserRepository, deps.CompanyRepository),
	)
	s.GetUser = auth.WithAuthentication(
		deps.SessionRepository,
		getuser.New(deps.Logger, deps.UserRepository, deps.CompanyRepository),
	)
	s.UpdateUser = auth.WithAuthentication(
		deps.SessionRepository,
		updateuser.New(deps.Logger, deps.UnitOfWork, deps.PasswordHasher, deps.Now),
	)
	s.DeleteUser = auth.WithAuthentication(
		deps.SessionRepository,
		deleteuser.New(deps.Logger, deps.UserRepository),
	)

	s.CreateCompany = auth.WithAuthentication(
		deps.SessionRepository,
		createcompany.New(deps.Logger, deps.CompanyRepository, deps.Now),
	)
	s.ListCompanies = auth.WithAuthentication(
		deps.SessionRepository,
		listcompanies.New(deps.Logger, deps.CompanyRepository),
	)
	s.GetCompany = auth.WithAuthentication(
		deps.SessionRepository,
		getcompany.New(deps.Logger, deps.CompanyRepository),
	)
	s.UpdateCompany = auth.WithAuthentication(
		deps.SessionRepository,
		updatecompany.New(deps.Logger, deps.CompanyRepository),
	)
	s.DeleteCompany = auth.WithAuthentication(
		deps.SessionRepository,
		deletecompany.New(deps.Logger, deps.CompanyRepository),
	)

	return s
}

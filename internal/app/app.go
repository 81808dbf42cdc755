package app

import (
	"fmt"
	"net/http"
	"useradmin/internal/app/deps"
	"useradmin/internal/app/services"
	"useradmin/internal/http/handlers/auth"
	login "useradmin/internal/http/handlers/auth/log_in"
	logout "useradmin/internal/http/handlers/auth/log_out"
	me "useradmin/internal/http/handlers/auth/me"
	resetpassword "useradmin/internal/http/handlers/auth/reset_password"
	sendpasswordresettoken "useradmin/internal/http/handlers/auth/send_password_reset_token"
	setpassword "useradmin/internal/http/handlers/auth/set_password"
	createcompany "useradmin/internal/http/handlers/companies/create_company"
	deletecompany "useradmin/internal/http/handlers/companies/delete_company"
	getcompany "useradmin/internal/http/handlers/companies/get_company"
	listcompanies "useradmin/internal/http/handlers/companies/list_companies"
	updatecompany "useradmin/internal/http/handlers/companies/update_company"
	createuser "useradmin/internal/http/handlers/users/create_user"
	deleteuser "useradmin/internal/http/handlers/users/delete_user"
	getuser "useradmin/internal/http/handlers/users/get_user"
	listusers "useradmin/internal/http/handlers/users/list_users"
	updateuser "useradmin/internal/http/handlers/users/update_user"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func InitHttpServer(deps *deps.Deps, s *services.Services) *http.Server {
	authRouter := chi.NewRouter()
	authRouter.Method(http.MethodPost, "/login", login.New(s.LogIn))
	authRouter.Method(http.MethodPost, "/logout", logout.New(s.LogOut))
	authRouter.Method(http.MethodGet, "/me", me.New(s.GetUserBySessionToken))
	authRouter.Method(http.MethodPut, "/password", setpassword.New(s.SetPassword))
	authRouter.Method(http.MethodPost, "/password_reset/token", sendpasswordresettoken.New(s.SendPasswordResetToken))
	authRouter.Method(http.MethodPut, "/password_reset", resetpassword.New(s.ResetPassword))

	usersRouter := chi.NewRouter()
	usersRouter.Use(auth.SetAuthTokenToContext)
	usersRouter.Method(http.MethodGet, "/", listusers.New(s.ListUsers))
	usersRouter.Method(http.MethodPost, "/", createuser.New(s.CreateUser))
	usersRouter.Method(http.MethodGet, "/{userID:[0-9]+}", getuser.New(s.GetUser))
	usersRouter.Method(http.MethodPatch, "/{userID:[0-9]+}", updateuser.New(s.UpdateUser))
	usersRouter.Method(http.MethodDelete, "/{userID:[0-9]+}", deleteuser.New(s.DeleteUser))

	companiesRouter := chi.NewRouter()
	companiesRouter.Use(auth.SetAuthTokenToContext)
	companiesRouter.Method(http.MethodGet, "/", listcompanies.New(s.ListCompanies))
	companiesRouter.Method(http.MethodPost, "/", createcompany.New(s.CreateCompany))
	companiesRouter.Method(http.MethodGet, "/{companyID:[0-9]+}", getcompany.New(s.GetCompany))
	companiesRouter.Method(http.MethodPut, "/{companyID:[0-9]+}", updatecompany.New(s.UpdateCompany))
	companiesRouter.Method(http.MethodDelete, "/{companyID:[0-9]+}", deletecompany.New(s.DeleteCompany))

	router := chi.NewRouter()
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	router.Mount("/auth", authRouter)
	router.Mount("/users", usersRouter)
	router.Mount("/companies", companiesRouter)

	address := fmt.Sprintf("%s:%d", deps.Config.Host, deps.Config.Port)

	return &http.Server{
		Handler: router,
		Addr:    address,
	}
}

package login

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"useradmin/internal/core/domain/user"
	"useradmin/internal/core/services"
	login "useradmin/internal/core/services/log_in"
	"useradmin/internal/http/handlers/response"

	validation "github.com/go-ozzo/ozzo-validation"
)

type Handler struct {
	service services.Service[login.Input, login.Result]
}

func New(
	service services.Service[login.Input, login.Result],
) *Handler {
	return &Handler{service: service}
}

type Input struct {
	UsernameOrEmail string `json:"username_or_email"`
	Password        string `json:"password"`
}

type Result struct {
	Token              string        `json:"token"`
	User               response.User `json:"user"`
	CanManageCompanies bool          `json:"can_manage_companies"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.UsernameOrEmail, validation.Required, validation.Length(0, 512)),
		validation.Field(&i.Password, validation.Required, validation.Length(0, 512)),
	)
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	input := Input{}
	if err := input.FromJSON(r.Body); err != nil {
		response.RenderError(rw, "invalid request data", http.StatusBadRequest)
		return
	}
	if err := input.Validate(); err != nil {
		response.Render(rw, err, http.StatusBadRequest)
		return
	}

	result, err := h.service.Run(
		r.Context(),
		login.Input{UsernameOrEmail: input.UsernameOrEmail, Password: user.RawPassword(input.Password)},
	)
	if errors.Is(err, user.ErrInvalidCredentials) {
		response.RenderError(rw, "invalid credentials", http.StatusUnauthorized)
		return
	}
	if errors.Is(err, user.ErrPasswordNotSet) {
		response.RenderError(rw, "password has not been set for the account", http.StatusUnauthorized)
		return
	}
	if err != nil {
		response.RenderInternalError(rw)
		return
	}

	res := Result{Token: string(result.Token), CanManageCompanies: result.CanManageCompanies}
	res.User.FromDomainUser(result.User)
	response.Render(rw, res, http.StatusOK)
}

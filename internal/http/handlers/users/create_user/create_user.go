package createuser

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	c "useradmin/internal/core/domain/common"
	"useradmin/internal/core/domain/company"
	e "useradmin/internal/core/domain/errors"
	"useradmin/internal/core/domain/user"
	"useradmin/internal/core/services"
	createuser "useradmin/internal/core/services/create_user"
	"useradmin/internal/http/handlers/response"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type Handler struct {
	service services.Service[createuser.Input, createuser.Result]
}

func New(
	service services.Service[createuser.Input, createuser.Result],
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

type Input struct {
	Username              string `json:"username"`
	Email                 string `json:"email"`
	Role                  string `json:"role"`
	CompanyID             *int64 `json:"company_id"`
	PrivacyPolicyAccepted bool   `json:"privacy_policy_accepted"`
}

type Result struct {
	User response.User `json:"user"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Username, validation.Required, validation.Length(1, 256)),
		validation.Field(&i.Email, validation.Required, is.Email, validation.Length(0, 512)),
		validation.Field(&i.Role, validation.Required, validation.In(
			string(user.RoleUsuario),
			string(user.RoleSuperusuario),
			string(user.RoleAdministrador),
		)),
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

	companyID := c.Optional[company.ID]{}
	if input.CompanyID != nil {
		companyID = c.NewOptional(company.ID(*input.CompanyID), true)
	}

	result, err := h.service.Run(
		r.Context(),
		createuser.Input{
			Username:              input.Username,
			Email:                 c.Email(input.Email),
			Role:                  user.Role(input.Role),
			CompanyID:             companyID,
			PrivacyPolicyAccepted: input.PrivacyPolicyAccepted,
		},
	)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrSessionDoesNotExist):
			response.RenderUnauthorized(rw)
		case errors.Is(err, user.ErrCompanyRequired):
			response.RenderError(rw, err.Error(), http.StatusBadRequest)
		case errors.Is(err, company.ErrCompanyDoesNotExist):
			response.RenderError(rw, err.Error(), http.StatusBadRequest)
		case errors.Is(err, user.ErrUsernameAlreadyExists):
			response.RenderError(rw, err.Error(), http.StatusConflict)
		case errors.Is(err, user.ErrEmailAlreadyExists):
			response.RenderError(rw, err.Error(), http.StatusConflict)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	res := Result{}
	res.User.FromDomainUser(result.User)
	response.Render(rw, res, http.StatusCreated)
}

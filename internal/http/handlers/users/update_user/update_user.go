package updateuser

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	c "useradmin/internal/core/domain/common"
	"useradmin/internal/core/domain/company"
	e "useradmin/internal/core/domain/errors"
	"useradmin/internal/core/domain/user"
	"useradmin/internal/core/services"
	updateuser "useradmin/internal/core/services/update_user"
	"useradmin/internal/http/handlers/response"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type Handler struct {
	service services.Service[updateuser.Input, updateuser.Result]
}

func New(
	service services.Service[updateuser.Input, updateuser.Result],
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

type Input struct {
	Email                 *string `json:"email"`
	Role                  *string `json:"role"`
	CompanyID             *int64  `json:"company_id"`
	RemoveCompany         bool    `json:"remove_company"`
	PrivacyPolicyAccepted *bool   `json:"privacy_policy_accepted"`
	NewPassword           *string `json:"new_password"`
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
		validation.Field(&i.Email, is.Email, validation.Length(0, 512)),
		validation.Field(&i.Role, validation.In(
			string(user.RoleUsuario),
			string(user.RoleSuperusuario),
			string(user.RoleAdministrador),
		)),
		validation.Field(&i.NewPassword, validation.Length(8, 256)),
	)
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	rawUserID := chi.URLParam(r, "userID")
	userID, err := strconv.ParseInt(rawUserID, 10, 64)
	if err != nil {
		response.RenderError(rw, "invalid user ID", http.StatusBadRequest)
		return
	}

	input := Input{}
	if err := input.FromJSON(r.Body); err != nil {
		response.RenderError(rw, "invalid request data", http.StatusBadRequest)
		return
	}
	if err := input.Validate(); err != nil {
		response.Render(rw, err, http.StatusBadRequest)
		return
	}

	serviceInput := updateuser.Input{ID: user.ID(userID), RemoveCompany: input.RemoveCompany}
	if input.Email != nil {
		serviceInput.Email = c.NewOptional(c.Email(*input.Email), true)
	}
	if input.Role != nil {
		serviceInput.Role = c.NewOptional(user.Role(*input.Role), true)
	}
	if input.CompanyID != nil {
		serviceInput.CompanyID = c.NewOptional(company.ID(*input.CompanyID), true)
	}
	if input.PrivacyPolicyAccepted != nil {
		serviceInput.PrivacyPolicyAccepted = c.NewOptional(*input.PrivacyPolicyAccepted, true)
	}
	if input.NewPassword != nil {
		serviceInput.NewPassword = c.NewOptional(user.RawPassword(*input.NewPassword), true)
	}

	result, err := h.service.Run(r.Context(), serviceInput)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrSessionDoesNotExist):
			response.RenderUnauthorized(rw)
		case errors.Is(err, user.ErrUserDoesNotExist):
			response.RenderNotFound(rw, err.Error())
		case errors.Is(err, user.ErrCompanyRequired):
			response.RenderError(rw, err.Error(), http.StatusBadRequest)
		case errors.Is(err, company.ErrCompanyDoesNotExist):
			response.RenderError(rw, err.Error(), http.StatusBadRequest)
		case errors.Is(err, user.ErrEmailAlreadyExists):
			response.RenderError(rw, err.Error(), http.StatusConflict)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	res := Result{}
	res.User.FromDomainUser(result.User)
	response.Render(rw, res, http.StatusOK)
}

package updatecompany

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"useradmin/internal/core/domain/company"
	e "useradmin/internal/core/domain/errors"
	"useradmin/internal/core/domain/user"
	"useradmin/internal/core/services"
	updatecompany "useradmin/internal/core/services/update_company"
	"useradmin/internal/http/handlers/response"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation"
)

type Handler struct {
	service services.Service[updatecompany.Input, updatecompany.Result]
}

func New(
	service services.Service[updatecompany.Input, updatecompany.Result],
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

type Input struct {
	Name string `json:"name"`
}

type Result struct {
	Company response.Company `json:"company"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Name, validation.Required, validation.Length(1, 256)),
	)
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	rawCompanyID := chi.URLParam(r, "companyID")
	companyID, err := strconv.ParseInt(rawCompanyID, 10, 64)
	if err != nil {
		response.RenderError(rw, "invalid company ID", http.StatusBadRequest)
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

	result, err := h.service.Run(
		r.Context(),
		updatecompany.Input{ID: company.ID(companyID), Name: input.Name},
	)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrSessionDoesNotExist):
			response.RenderUnauthorized(rw)
		case errors.Is(err, company.ErrCompanyDoesNotExist):
			response.RenderNotFound(rw, err.Error())
		case errors.Is(err, company.ErrCompanyNameAlreadyExists):
			response.RenderError(rw, err.Error(), http.StatusConflict)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	res := Result{}
	res.Company.FromDomainCompany(result.Company)
	response.Render(rw, res, http.StatusOK)
}

package createcompany

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"useradmin/internal/core/domain/company"
	e "useradmin/internal/core/domain/errors"
	"useradmin/internal/core/domain/user"
	"useradmin/internal/core/services"
	createcompany "useradmin/internal/core/services/create_company"
	"useradmin/internal/http/handlers/response"

	validation "github.com/go-ozzo/ozzo-validation"
)

type Handler struct {
	service services.Service[createcompany.Input, createcompany.Result]
}

func New(
	service services.Service[createcompany.Input, createcompany.Result],
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
	input := Input{}
	if err := input.FromJSON(r.Body); err != nil {
		response.RenderError(rw, "invalid request data", http.StatusBadRequest)
		return
	}
	if err := input.Validate(); err != nil {
		response.Render(rw, err, http.StatusBadRequest)
		return
	}

	result, err := h.service.Run(r.Context(), createcompany.Input{Name: input.Name})
	if err != nil {
		switch {
		case errors.Is(err, user.ErrSessionDoesNotExist):
			response.RenderUnauthorized(rw)
		case errors.Is(err, company.ErrCompanyNameAlreadyExists):
			response.RenderError(rw, err.Error(), http.StatusConflict)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	res := Result{}
	res.Company.FromDomainCompany(result.Company)
	response.Render(rw, res, http.StatusCreated)
}

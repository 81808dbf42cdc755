package getcompany

import (
	"errors"
	"net/http"
	"strconv"
	"useradmin/internal/core/domain/company"
	e "useradmin/internal/core/domain/errors"
	"useradmin/internal/core/domain/user"
	"useradmin/internal/core/services"
	getcompany "useradmin/internal/core/services/get_company"
	"useradmin/internal/http/handlers/response"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service services.Service[getcompany.Input, getcompany.Result]
}

func New(
	service services.Service[getcompany.Input, getcompany.Result],
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

type Result struct {
	Company response.Company `json:"company"`
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	rawCompanyID := chi.URLParam(r, "companyID")
	companyID, err := strconv.ParseInt(rawCompanyID, 10, 64)
	if err != nil {
		response.RenderError(rw, "invalid company ID", http.StatusBadRequest)
		return
	}

	result, err := h.service.Run(r.Context(), getcompany.Input{ID: company.ID(companyID)})
	if err != nil {
		switch {
		case errors.Is(err, user.ErrSessionDoesNotExist):
			response.RenderUnauthorized(rw)
		case errors.Is(err, company.ErrCompanyDoesNotExist):
			response.RenderNotFound(rw, err.Error())
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	res := Result{}
	res.Company.FromDomainCompany(result.Company)
	response.Render(rw, res, http.StatusOK)
}

package listcompanies

import (
	"errors"
	"net/http"
	e "useradmin/internal/core/domain/errors"
	"useradmin/internal/core/domain/user"
	"useradmin/internal/core/services"
	listcompanies "useradmin/internal/core/services/list_companies"
	"useradmin/internal/http/handlers/response"
)

type Handler struct {
	service services.Service[listcompanies.Input, listcompanies.Result]
}

func New(
	service services.Service[listcompanies.Input, listcompanies.Result],
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

type Result struct {
	Companies []response.Company `json:"companies"`
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	result, err := h.service.Run(r.Context(), listcompanies.Input{})
	if errors.Is(err, user.ErrSessionDoesNotExist) {
		response.RenderUnauthorized(rw)
		return
	}
	if err != nil {
		response.RenderInternalError(rw)
		return
	}

	companies := make([]response.Company, 0, len(result.Companies))
	for _, dc := range result.Companies {
		co := response.Company{}
		co.FromDomainCompany(dc)
		companies = append(companies, co)
	}
	response.Render(rw, Result{Companies: companies}, http.StatusOK)
}

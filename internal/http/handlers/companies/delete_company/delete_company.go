package deletecompany

import (
	"errors"
	"net/http"
	"strconv"
	"useradmin/internal/core/domain/company"
	e "useradmin/internal/core/domain/errors"
	"useradmin/internal/core/domain/user"
	"useradmin/internal/core/services"
	deletecompany "useradmin/internal/core/services/delete_company"
	"useradmin/internal/http/handlers/response"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service services.Service[deletecompany.Input, deletecompany.Result]
}

func New(
	service services.Service[deletecompany.Input, deletecompany.Result],
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	rawCompanyID := chi.URLParam(r, "companyID")
	companyID, err := strconv.ParseInt(rawCompanyID, 10, 64)
	if err != nil {
		response.RenderError(rw, "invalid company ID", http.StatusBadRequest)
		return
	}

	_, err = h.service.Run(r.Context(), deletecompany.Input{ID: company.ID(companyID)})
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

	response.Render(rw, struct{}{}, http.StatusOK)
}

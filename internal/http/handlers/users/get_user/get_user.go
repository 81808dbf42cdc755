package getuser

import (
	"errors"
	"net/http"
	"strconv"
	e "useradmin/internal/core/domain/errors"
	"useradmin/internal/core/domain/user"
	"useradmin/internal/core/services"
	getuser "useradmin/internal/core/services/get_user"
	"useradmin/internal/http/handlers/response"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service services.Service[getuser.Input, getuser.Result]
}

func New(
	service services.Service[getuser.Input, getuser.Result],
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

type Result struct {
	User response.User `json:"user"`
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	rawUserID := chi.URLParam(r, "userID")
	userID, err := strconv.ParseInt(rawUserID, 10, 64)
	if err != nil {
		response.RenderError(rw, "invalid user ID", http.StatusBadRequest)
		return
	}

	result, err := h.service.Run(r.Context(), getuser.Input{ID: user.ID(userID)})
	if err != nil {
		switch {
		case errors.Is(err, user.ErrSessionDoesNotExist):
			response.RenderUnauthorized(rw)
		case errors.Is(err, user.ErrUserDoesNotExist):
			response.RenderNotFound(rw, err.Error())
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	res := Result{}
	res.User.FromDomainUser(result.User)
	res.User.WithCompanyName(result.CompanyName)
	response.Render(rw, res, http.StatusOK)
}

package deleteuser

import (
	"errors"
	"net/http"
	"strconv"
	e "useradmin/internal/core/domain/errors"
	"useradmin/internal/core/domain/user"
	"useradmin/internal/core/services"
	deleteuser "useradmin/internal/core/services/delete_user"
	"useradmin/internal/http/handlers/response"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service services.Service[deleteuser.Input, deleteuser.Result]
}

func New(
	service services.Service[deleteuser.Input, deleteuser.Result],
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	rawUserID := chi.URLParam(r, "userID")
	userID, err := strconv.ParseInt(rawUserID, 10, 64)
	if err != nil {
		response.RenderError(rw, "invalid user ID", http.StatusBadRequest)
		return
	}

	_, err = h.service.Run(r.Context(), deleteuser.Input{ID: user.ID(userID)})
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

	response.Render(rw, struct{}{}, http.StatusOK)
}

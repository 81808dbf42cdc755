package listusers

import (
	"errors"
	"net/http"
	e "useradmin/internal/core/domain/errors"
	"useradmin/internal/core/domain/user"
	"useradmin/internal/core/services"
	listusers "useradmin/internal/core/services/list_users"
	"useradmin/internal/http/handlers/response"
)

type Handler struct {
	service services.Service[listusers.Input, listusers.Result]
}

func New(
	service services.Service[listusers.Input, listusers.Result],
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

type Result struct {
	Users []response.User `json:"users"`
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	result, err := h.service.Run(r.Context(), listusers.Input{})
	if errors.Is(err, user.ErrSessionDoesNotExist) {
		response.RenderUnauthorized(rw)
		return
	}
	if err != nil {
		response.RenderInternalError(rw)
		return
	}

	users := make([]response.User, 0, len(result.Users))
	for _, view := range result.Users {
		u := response.User{}
		u.FromDomainUser(view.User)
		u.WithCompanyName(view.CompanyName)
		users = append(users, u)
	}
	response.Render(rw, Result{Users: users}, http.StatusOK)
}

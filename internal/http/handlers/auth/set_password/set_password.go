package setpassword

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	e "useradmin/internal/core/domain/errors"
	"useradmin/internal/core/domain/user"
	"useradmin/internal/core/services"
	setpassword "useradmin/internal/core/services/set_password"
	"useradmin/internal/http/handlers/response"

	validation "github.com/go-ozzo/ozzo-validation"
)

type Handler struct {
	service services.Service[setpassword.Input, setpassword.Result]
}

func New(
	service services.Service[setpassword.Input, setpassword.Result],
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

type Input struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Token, validation.Required, validation.Length(0, 1024)),
		validation.Field(&i.Password, validation.Required, validation.Length(8, 256)),
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

	_, err := h.service.Run(
		r.Context(),
		setpassword.Input{
			Token:       user.SetPasswordToken(input.Token),
			NewPassword: user.RawPassword(input.Password),
		},
	)
	if errors.Is(err, user.ErrTokenDoesNotExist) {
		response.RenderError(rw, "invalid token", http.StatusUnprocessableEntity)
		return
	}
	if errors.Is(err, user.ErrTokenExpired) {
		response.RenderError(rw, "token has expired", http.StatusUnprocessableEntity)
		return
	}
	if err != nil {
		response.RenderInternalError(rw)
		return
	}

	response.Render(rw, struct{}{}, http.StatusOK)
}

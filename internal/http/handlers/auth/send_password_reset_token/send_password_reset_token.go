package sendpasswordresettoken

import (
	"encoding/json"
	"io"
	"net/http"
	c "useradmin/internal/core/domain/common"
	e "useradmin/internal/core/domain/errors"
	"useradmin/internal/core/services"
	sendpasswordresettoken "useradmin/internal/core/services/send_password_reset_token"
	"useradmin/internal/http/handlers/response"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type Handler struct {
	service services.Service[sendpasswordresettoken.Input, sendpasswordresettoken.Result]
}

func New(
	service services.Service[sendpasswordresettoken.Input, sendpasswordresettoken.Result],
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

type Input struct {
	Email string `json:"email"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Email, validation.Required, is.Email, validation.Length(0, 512)),
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

	// The response is the same whether or not the email is known.
	_, err := h.service.Run(
		r.Context(),
		sendpasswordresettoken.Input{Email: c.Email(input.Email)},
	)
	if err != nil {
		response.RenderInternalError(rw)
		return
	}

	response.Render(rw, struct{}{}, http.StatusOK)
}

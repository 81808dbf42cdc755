package resetpassword

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"useradmin/internal/core/domain/user"
	service "useradmin/internal/core/services/reset_password"

	"github.com/stretchr/testify/assert"
)

type stubService struct {
	err   error
	input *service.Input
}

func (s *stubService) Run(ctx context.Context, input service.Input) (result service.Result, err error) {
	if s.err != nil {
		return result, s.err
	}
	s.input = &input
	return result, nil
}

func TestResetPasswordHandler(t *testing.T) {
	cases := []struct {
		name           string
		body           string
		serviceErr     error
		expectedStatus int
		expectedInput  *service.Input
	}{
		{
			name:           "valid",
			body:           `{"token": "abc", "password": "new-password", "confirm_password": "new-password"}`,
			expectedStatus: http.StatusOK,
			expectedInput: &service.Input{
				Token:       user.ResetPasswordToken("abc"),
				NewPassword: user.RawPassword("new-password"),
			},
		},
		{
			name:           "missing token",
			body:           `{"password": "new-password", "confirm_password": "new-password"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "password too short",
			body:           `{"token": "abc", "password": "short", "confirm_password": "short"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "confirmation does not match",
			body:           `{"token": "abc", "password": "new-password", "confirm_password": "other-password"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown token",
			body:           `{"token": "abc", "password": "new-password", "confirm_password": "new-password"}`,
			serviceErr:     user.ErrTokenDoesNotExist,
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name:           "expired token",
			body:           `{"token": "abc", "password": "new-password", "confirm_password": "new-password"}`,
			serviceErr:     user.ErrTokenExpired,
			expectedStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, testcase := range cases {
		t.Run(testcase.name, func(t *testing.T) {
			req, err := http.NewRequest("PUT", "/auth/password_reset", strings.NewReader(testcase.body))
			if err != nil {
				t.Fatal(err)
			}

			service := &stubService{err: testcase.serviceErr}
			rr := httptest.NewRecorder()
			handler := New(service)
			handler.ServeHTTP(rr, req)

			assert.Equal(t, testcase.expectedStatus, rr.Code)
			assert.Equal(t, testcase.expectedInput, service.input)
		})
	}
}

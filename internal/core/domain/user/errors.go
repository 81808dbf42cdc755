package user

import (
	"errors"
)

var (
	ErrUsernameAlreadyExists = errors.New("username already exists")
	ErrEmailAlreadyExists    = errors.New("email already exists")
	ErrUserDoesNotExist      = errors.New("user does not exist")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrPasswordNotSet        = errors.New("password is not set")
	ErrTokenDoesNotExist     = errors.New("token does not exist")
	ErrTokenExpired          = errors.New("token expired")
	ErrSessionDoesNotExist   = errors.New("session does not exist")
	ErrCompanyRequired       = errors.New("company is required for the role")
)

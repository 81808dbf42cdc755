package company

import (
	"errors"
)

var (
	ErrCompanyDoesNotExist      = errors.New("company does not exist")
	ErrCompanyNameAlreadyExists = errors.New("company name already exists")
)

package session

import (
	"useradmin/internal/core/domain/user"

	"github.com/google/uuid"
)

type UUID struct{}

func NewUUID() *UUID {
	return &UUID{}
}

func (g *UUID) GenerateSessionToken() user.SessionToken {
	return user.SessionToken(uuid.New().String())
}

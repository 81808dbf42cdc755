package user

import (
	"context"
	"time"
)

const (
	SetPasswordTokenValidDuration   = 24 * time.Hour
	ResetPasswordTokenValidDuration = time.Hour
)

type SetPasswordTokenGenerator interface {
	GenerateSetPasswordToken() SetPasswordToken
}

type ResetPasswordTokenGenerator interface {
	GenerateResetPasswordToken() ResetPasswordToken
}

type SessionTokenGenerator interface {
	GenerateSessionToken() SessionToken
}

type PasswordHasher interface {
	HashPassword(password RawPassword) (PasswordHash, error)
	ValidatePassword(password RawPassword, hash PasswordHash) bool
}

// SetPasswordTokenSender delivers the set-password link to a freshly
// created user. Failures are logged by callers, never surfaced.
type SetPasswordTokenSender interface {
	SendSetPasswordToken(ctx context.Context, user User) error
}

type PasswordResetTokenSender interface {
	SendPasswordResetToken(ctx context.Context, user User) error
}

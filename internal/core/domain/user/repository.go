package user

import (
	"context"
	"time"
	c "useradmin/internal/core/domain/common"
	"useradmin/internal/core/domain/company"
)

type CreateUserInput struct {
	Username               string
	Email                  c.Email
	PrivacyPolicyAccepted  bool
	Role                   Role
	CompanyID              c.Optional[company.ID]
	SetPasswordToken       c.Optional[SetPasswordToken]
	SetPasswordTokenExpiry c.Optional[time.Time]
	CreatedAt              time.Time
}

type UpdateUserInput struct {
	ID ID

	DoEmailUpdate bool
	Email         c.Email

	DoRoleUpdate bool
	Role         Role

	DoCompanyIDUpdate bool
	CompanyID         c.Optional[company.ID]

	DoPrivacyPolicyUpdate bool
	PrivacyPolicyAccepted bool

	// A forced password update clears any pending set-password token.
	DoPasswordHashUpdate bool
	PasswordHash         PasswordHash

	At time.Time
}

type SetResetPasswordTokenInput struct {
	ID        ID
	Token     ResetPasswordToken
	ExpiresAt time.Time
	At        time.Time
}

// ConsumeSetPasswordTokenInput carries the conditional update that
// establishes the first password. The repository must apply it only if
// the token is still set on the row (compare-and-swap), so that a
// token is consumed at most once under concurrent requests.
type ConsumeSetPasswordTokenInput struct {
	Token        SetPasswordToken
	PasswordHash PasswordHash
	At           time.Time
}

type ConsumeResetPasswordTokenInput struct {
	Token        ResetPasswordToken
	PasswordHash PasswordHash
	At           time.Time
}

type UserRepository interface {
	Create(ctx context.Context, input CreateUserInput) (User, error)
	GetByID(ctx context.Context, id ID) (User, error)
	GetByEmail(ctx context.Context, email c.Email) (User, error)
	GetByUsernameOrEmail(ctx context.Context, identifier string) (User, error)
	List(ctx context.Context) ([]User, error)
	Update(ctx context.Context, input UpdateUserInput) (User, error)
	Delete(ctx context.Context, id ID) error

	GetBySetPasswordToken(ctx context.Context, token SetPasswordToken) (User, error)
	ConsumeSetPasswordToken(ctx context.Context, input ConsumeSetPasswordTokenInput) (User, error)
	ClearSetPasswordToken(ctx context.Context, token SetPasswordToken, at time.Time) error

	SetResetPasswordToken(ctx context.Context, input SetResetPasswordTokenInput) (User, error)
	GetByResetPasswordToken(ctx context.Context, token ResetPasswordToken) (User, error)
	ConsumeResetPasswordToken(ctx context.Context, input ConsumeResetPasswordTokenInput) (User, error)
	ClearResetPasswordToken(ctx context.Context, token ResetPasswordToken, at time.Time) error
}

type CreateSessionInput struct {
	UserID    ID
	Token     SessionToken
	CreatedAt time.Time
}

type SessionRepository interface {
	Create(ctx context.Context, input CreateSessionInput) error
	GetUserByToken(ctx context.Context, token SessionToken) (User, error)
	Delete(ctx context.Context, token SessionToken) (userID ID, err error)
}

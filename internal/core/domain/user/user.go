package user

import (
	"fmt"
	"time"
	c "useradmin/internal/core/domain/common"
	"useradmin/internal/core/domain/company"
	e "useradmin/internal/core/domain/errors"
)

type ID int64

type PasswordHash string

func (p PasswordHash) String() string {
	return "***"
}

type RawPassword string

func (p RawPassword) String() string {
	return "***"
}

// SetPasswordToken is the single-use token a newly created account
// uses to establish its first password. Valid for 24 hours.
type SetPasswordToken string

// ResetPasswordToken is the single-use token of the forgot-password
// flow. Valid for 1 hour.
type ResetPasswordToken string

type SessionToken string

type Role string

const (
	RoleUsuario       = Role("Usuario")
	RoleSuperusuario  = Role("Superusuario")
	RoleAdministrador = Role("Administrador")
)

func (r Role) IsValid() bool {
	switch r {
	case RoleUsuario, RoleSuperusuario, RoleAdministrador:
		return true
	}
	return false
}

// RequiresCompany reports whether the role must be associated with a
// company. Administrators may exist without one.
func (r Role) RequiresCompany() bool {
	return r == RoleUsuario || r == RoleSuperusuario
}

type User struct {
	ID                       ID
	Username                 string
	Email                    c.Email
	PasswordHash             c.Optional[PasswordHash]
	PrivacyPolicyAccepted    bool
	Role                     Role
	CompanyID                c.Optional[company.ID]
	IsEmailVerified          bool
	SetPasswordToken         c.Optional[SetPasswordToken]
	SetPasswordTokenExpiry   c.Optional[time.Time]
	ResetPasswordToken       c.Optional[ResetPasswordToken]
	ResetPasswordTokenExpiry c.Optional[time.Time]
	CreatedAt                time.Time
	UpdatedAt                time.Time
}

func (u *User) Validate() error {
	if !u.Role.IsValid() {
		return e.NewInvalidStateError(fmt.Sprintf("invalid role %q for user %d", u.Role, u.ID))
	}
	if u.Role.RequiresCompany() && !u.CompanyID.IsPresent {
		return e.NewInvalidStateError(fmt.Sprintf("company is not set for user %d with role %s", u.ID, u.Role))
	}
	if u.SetPasswordToken.IsPresent != u.SetPasswordTokenExpiry.IsPresent {
		return e.NewInvalidStateError(fmt.Sprintf("inconsistent set-password token state for user %d", u.ID))
	}
	if u.ResetPasswordToken.IsPresent != u.ResetPasswordTokenExpiry.IsPresent {
		return e.NewInvalidStateError(fmt.Sprintf("inconsistent reset-password token state for user %d", u.ID))
	}
	return nil
}

// HasPassword reports whether the account can authenticate by
// password at all.
func (u *User) HasPassword() bool {
	return u.PasswordHash.IsPresent
}

func (u *User) CanManageCompanies() bool {
	return u.Role == RoleAdministrador
}

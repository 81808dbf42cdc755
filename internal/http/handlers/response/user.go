package response

import (
	"time"
	c "useradmin/internal/core/domain/common"
	"useradmin/internal/core/domain/user"
)

// User is the public projection. Password hashes and lifecycle tokens
// never leave the service.
type User struct {
	ID                    int64     `json:"id"`
	Username              string    `json:"username"`
	Email                 string    `json:"email"`
	Role                  string    `json:"role"`
	CompanyID             *int64    `json:"company_id,omitempty"`
	CompanyName           *string   `json:"company_name,omitempty"`
	IsEmailVerified       bool      `json:"is_email_verified"`
	PrivacyPolicyAccepted bool      `json:"privacy_policy_accepted"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

func (u *User) FromDomainUser(du user.User) {
	u.ID = int64(du.ID)
	u.Username = du.Username
	u.Email = string(du.Email)
	u.Role = string(du.Role)
	if du.CompanyID.IsPresent {
		companyID := int64(du.CompanyID.Value)
		u.CompanyID = &companyID
	}
	u.IsEmailVerified = du.IsEmailVerified
	u.PrivacyPolicyAccepted = du.PrivacyPolicyAccepted
	u.CreatedAt = du.CreatedAt
	u.UpdatedAt = du.UpdatedAt
}

func (u *User) WithCompanyName(name c.Optional[string]) {
	if name.IsPresent {
		companyName := name.Value
		u.CompanyName = &companyName
	}
}

package response

import (
	"time"
	"useradmin/internal/core/domain/company"
)

type Company struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func (c *Company) FromDomainCompany(dc company.Company) {
	c.ID = int64(dc.ID)
	c.Name = dc.Name
	c.CreatedAt = dc.CreatedAt
}

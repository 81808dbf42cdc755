package company

import (
	"time"
)

type ID int64

type Company struct {
	ID        ID
	Name      string
	CreatedAt time.Time
}

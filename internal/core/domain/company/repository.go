package company

import (
	"context"
	"time"
)

type CreateInput struct {
	Name      string
	CreatedAt time.Time
}

type UpdateInput struct {
	ID   ID
	Name string
}

type Repository interface {
	Create(ctx context.Context, input CreateInput) (Company, error)
	GetByID(ctx context.Context, id ID) (Company, error)
	List(ctx context.Context) ([]Company, error)
	Exists(ctx context.Context, id ID) (bool, error)
	Update(ctx context.Context, input UpdateInput) (Company, error)
	Delete(ctx context.Context, id ID) error
}

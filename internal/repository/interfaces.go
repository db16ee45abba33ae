package repository

import (
	"context"
	"errors"

	"github.com/bariskara/product-api/internal/models"
)

// ErrNotFound is the not-found sentinel returned by every lookup. Store
// failures are returned as-is and never cross the handler boundary.
var ErrNotFound = errors.New("not found")

type Users interface {
	Create(ctx context.Context, username, passwordHash string) (models.User, error)
	GetByUsername(ctx context.Context, username string) (models.User, error)
}

type Products interface {
	Create(ctx context.Context, p models.Product) (models.Product, error)
	GetByID(ctx context.Context, id string) (models.Product, error)
	Update(ctx context.Context, id string, patch models.ProductUpdate) (models.Product, error)
	Delete(ctx context.Context, id string) error
}

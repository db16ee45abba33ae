package postgres

import (
	repo "github.com/bariskara/product-api/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repositories struct {
	Users    repo.Users
	Products repo.Products
}

func NewRepositories(pool *pgxpool.Pool) Repositories {
	return Repositories{
		Users:    &usersRepo{pool},
		Products: &productsRepo{pool},
	}
}

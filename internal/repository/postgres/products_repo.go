package postgres

import (
	"context"
	"errors"

	"github.com/bariskara/product-api/internal/models"
	"github.com/bariskara/product-api/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type productsRepo struct{ pool *pgxpool.Pool }

func NewProducts(pool *pgxpool.Pool) repository.Products {
	return &productsRepo{pool: pool}
}

const productCols = `id, name, price, description, category, image_url, quantity, created_at, updated_at`

func scanProduct(row pgx.Row) (models.Product, error) {
	var p models.Product
	err := row.Scan(&p.ID, &p.Name, &p.Price, &p.Description, &p.Category, &p.ImageURL, &p.Quantity, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Product{}, repository.ErrNotFound
	}
	return p, err
}

func (r *productsRepo) Create(ctx context.Context, p models.Product) (models.Product, error) {
	id := uuid.NewString()
	return scanProduct(r.pool.QueryRow(ctx,
		`INSERT INTO products(id, name, price, description, category, image_url, quantity)
		 VALUES($1,$2,$3,$4,$5,$6,$7)
		 RETURNING `+productCols,
		id, p.Name, p.Price, p.Description, p.Category, p.ImageURL, p.Quantity,
	))
}

func (r *productsRepo) GetByID(ctx context.Context, id string) (models.Product, error) {
	return scanProduct(r.pool.QueryRow(ctx,
		`SELECT `+productCols+` FROM products WHERE id=$1`, id))
}

// Update applies a partial update: NULL parameters keep the stored value.
func (r *productsRepo) Update(ctx context.Context, id string, patch models.ProductUpdate) (models.Product, error) {
	return scanProduct(r.pool.QueryRow(ctx,
		`UPDATE products SET
			name        = COALESCE($2, name),
			price       = COALESCE($3, price),
			description = COALESCE($4, description),
			category    = COALESCE($5, category),
			image_url   = COALESCE($6, image_url),
			quantity    = COALESCE($7, quantity),
			updated_at  = now()
		 WHERE id=$1
		 RETURNING `+productCols,
		id, patch.Name, patch.Price, patch.Description, patch.Category, patch.ImageURL, patch.Quantity,
	))
}

func (r *productsRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

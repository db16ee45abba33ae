package services

import (
	"context"

	"github.com/bariskara/product-api/internal/models"
	repo "github.com/bariskara/product-api/internal/repository"
)

type ProductService struct {
	products repo.Products
}

func NewProductService(products repo.Products) *ProductService {
	return &ProductService{products: products}
}

func (s *ProductService) Create(ctx context.Context, p models.Product) (models.Product, error) {
	return s.products.Create(ctx, p)
}

func (s *ProductService) GetByID(ctx context.Context, id string) (models.Product, error) {
	return s.products.GetByID(ctx, id)
}

func (s *ProductService) UpdateByID(ctx context.Context, id string, patch models.ProductUpdate) (models.Product, error) {
	return s.products.Update(ctx, id, patch)
}

func (s *ProductService) DeleteByID(ctx context.Context, id string) error {
	return s.products.Delete(ctx, id)
}

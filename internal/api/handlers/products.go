package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bariskara/product-api/internal/api/httpx"
	"github.com/bariskara/product-api/internal/metrics"
	"github.com/bariskara/product-api/internal/middleware"
	"github.com/bariskara/product-api/internal/models"
	repo "github.com/bariskara/product-api/internal/repository"
	"github.com/bariskara/product-api/internal/services"
)

type ProductHandler struct {
	svc *services.ProductService
}

func NewProductHandler(svc *services.ProductService) *ProductHandler {
	return &ProductHandler{svc: svc}
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	body := middleware.Body(r.Context())
	p := models.Product{
		Name:        str(body, "name"),
		Price:       num(body, "price"),
		Description: str(body, "description"),
		Category:    str(body, "category"),
		ImageURL:    str(body, "imageUrl"),
		Quantity:    int64(num(body, "quantity")),
	}

	created, err := h.svc.Create(r.Context(), p)
	if err != nil {
		slog.Error("product create", "err", err)
		httpx.Error(w, http.StatusInternalServerError, "An error occurred. Please try again", nil)
		return
	}
	metrics.ProductOps.WithLabelValues("create").Inc()
	httpx.Success(w, http.StatusCreated, "Product created successfully", created)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	p, err := h.svc.GetByID(r.Context(), id)
	if errors.Is(err, repo.ErrNotFound) {
		httpx.Error(w, http.StatusNotFound, "Product not found", nil)
		return
	}
	if err != nil {
		slog.Error("product get", "err", err)
		httpx.Error(w, http.StatusInternalServerError, "An error occurred. Please try again", nil)
		return
	}
	metrics.ProductOps.WithLabelValues("get").Inc()
	httpx.Success(w, http.StatusOK, "Product fetched successfully", p)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	body := middleware.Body(r.Context())

	patch := models.ProductUpdate{}
	if v, ok := body["name"].(string); ok {
		patch.Name = &v
	}
	if v, ok := body["price"].(float64); ok {
		patch.Price = &v
	}
	if v, ok := body["description"].(string); ok {
		patch.Description = &v
	}
	if v, ok := body["category"].(string); ok {
		patch.Category = &v
	}
	if v, ok := body["imageUrl"].(string); ok {
		patch.ImageURL = &v
	}
	if v, ok := body["quantity"].(float64); ok {
		q := int64(v)
		patch.Quantity = &q
	}

	p, err := h.svc.UpdateByID(r.Context(), id, patch)
	if errors.Is(err, repo.ErrNotFound) {
		httpx.Error(w, http.StatusNotFound, "Product not found", nil)
		return
	}
	if err != nil {
		slog.Error("product update", "err", err)
		httpx.Error(w, http.StatusInternalServerError, "An error occurred. Please try again", nil)
		return
	}
	metrics.ProductOps.WithLabelValues("update").Inc()
	httpx.Success(w, http.StatusOK, "Product updated successfully", p)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	err := h.svc.DeleteByID(r.Context(), id)
	if errors.Is(err, repo.ErrNotFound) {
		httpx.Error(w, http.StatusNotFound, "Product not found", nil)
		return
	}
	if err != nil {
		slog.Error("product delete", "err", err)
		httpx.Error(w, http.StatusInternalServerError, "An error occurred. Please try again", nil)
		return
	}
	metrics.ProductOps.WithLabelValues("delete").Inc()
	httpx.Success(w, http.StatusOK, "Product deleted successfully", nil)
}

func str(m map[string]any, k string) string {
	s, _ := m[k].(string)
	return s
}

func num(m map[string]any, k string) float64 {
	f, _ := m[k].(float64)
	return f
}

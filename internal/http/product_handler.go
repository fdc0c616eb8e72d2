package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/fjod/frocone/internal/catalog"
	"github.com/fjod/frocone/internal/domain"
	"github.com/go-chi/chi/v5"
)

type ProductService interface {
	ListProducts(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
}

type ProductHandler struct {
	products ProductService
	timeout  time.Duration
}

func NewProductHandler(products ProductService, timeout time.Duration) *ProductHandler {
	return &ProductHandler{
		products: products,
		timeout:  timeout,
	}
}

// List serves GET /api/products. Only the literal "true" enables the special
// and trending filters.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	q := r.URL.Query()
	filter := domain.ProductFilter{
		Category: q.Get("category"),
		Special:  q.Get("special") == "true",
		Trending: q.Get("trending") == "true",
	}

	products, err := h.products.ListProducts(ctx, filter)
	if err != nil {
		slog.ErrorContext(ctx, "list products failed", "error", err)
		respondMessage(w, http.StatusInternalServerError, "Failed to fetch products")
		return
	}

	respondJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondMessage(w, http.StatusNotFound, "Product not found")
		return
	}

	product, err := h.products.GetProduct(ctx, id)
	if errors.Is(err, catalog.ErrProductNotFound) {
		respondMessage(w, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		slog.ErrorContext(ctx, "get product failed", "product_id", id, "error", err)
		respondMessage(w, http.StatusInternalServerError, "Failed to fetch product")
		return
	}

	respondJSON(w, http.StatusOK, product)
}

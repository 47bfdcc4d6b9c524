package httpapi

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/GIUSEPPESAN21/ecommerce-platform/internal/catalog"
)

const maxPageSize = 100

type CatalogHandler struct {
	catalog *catalog.Service
	timeout time.Duration
}

func NewCatalogHandler(svc *catalog.Service, timeout time.Duration) *CatalogHandler {
	return &CatalogHandler{catalog: svc, timeout: timeout}
}

func (h *CatalogHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			respondError(w, http.StatusBadRequest, "invalid_limit", "limit must be a positive integer")
			return
		}
		limit = parsed
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	products := h.catalog.GetProducts(ctx, catalog.Filter{
		Category:    r.URL.Query().Get("category"),
		SearchQuery: r.URL.Query().Get("q"),
		Limit:       limit,
	})

	respondJSON(w, http.StatusOK, products)
}

func (h *CatalogHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	respondJSON(w, http.StatusOK, h.catalog.GetCategories(ctx))
}

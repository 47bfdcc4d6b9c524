package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/GIUSEPPESAN21/ecommerce-platform/internal/cart"
	"github.com/go-chi/chi/v5"
)

type CartHandler struct {
	cart        *cart.Service
	summary     *cart.Summarizer
	maxQuantity int
	timeout     time.Duration
}

func NewCartHandler(svc *cart.Service, summary *cart.Summarizer, maxQuantity int, timeout time.Duration) *CartHandler {
	return &CartHandler{cart: svc, summary: summary, maxQuantity: maxQuantity, timeout: timeout}
}

type AddItemRequestDTO struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := userIDFromContext(r.Context())

	summary, err := h.summary.Summary(ctx, userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, summary)
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := userIDFromContext(r.Context())

	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}
	if req.Quantity < 1 || req.Quantity > h.maxQuantity {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity out of range")
		return
	}

	if err := h.cart.AddItem(ctx, userID, req.ProductID, req.Quantity); err != nil {
		handleServiceError(w, err)
		return
	}

	summary, err := h.summary.Summary(ctx, userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, summary)
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := userIDFromContext(r.Context())
	productID := chi.URLParam(r, "product_id")
	if productID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Quantity > h.maxQuantity {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity out of range")
		return
	}

	if err := h.cart.UpdateItem(ctx, userID, productID, req.Quantity); err != nil {
		handleServiceError(w, err)
		return
	}

	summary, err := h.summary.Summary(ctx, userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, summary)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := userIDFromContext(r.Context())
	productID := chi.URLParam(r, "product_id")
	if productID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}

	// quantity zero removes the entry
	if err := h.cart.UpdateItem(ctx, userID, productID, 0); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := userIDFromContext(r.Context())

	if err := h.cart.Clear(ctx, userID); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

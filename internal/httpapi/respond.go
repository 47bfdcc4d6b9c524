package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/GIUSEPPESAN21/ecommerce-platform/internal/cart"
	"github.com/GIUSEPPESAN21/ecommerce-platform/internal/checkout"
	"github.com/GIUSEPPESAN21/ecommerce-platform/internal/store"
)

type ErrorResponse struct {
	Error  string            `json:"error"`
	Code   string            `json:"code,omitempty"`
	Fields map[string]string `json:"fields,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{Error: message, Code: code})
}

// handleServiceError maps engine errors onto HTTP responses. Validation and
// consistency failures come back with a specific code; anything unexpected
// degrades to a 502 rather than leaking internals.
func handleServiceError(w http.ResponseWriter, err error) {
	var validationErr *checkout.ValidationError
	var commitErr *checkout.CommitError

	switch {
	case errors.As(err, &validationErr):
		respondJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
			Error:  "validation failed",
			Code:   "validation_failed",
			Fields: validationErr.Fields,
		})
	case errors.As(err, &commitErr):
		respondError(w, http.StatusConflict, "commit_rejected", commitErr.Reason)
	case errors.Is(err, checkout.ErrEmptyCart), errors.Is(err, checkout.ErrCartAbandoned):
		respondError(w, http.StatusConflict, "empty_cart", err.Error())
	case errors.Is(err, checkout.ErrShippingMissing), errors.Is(err, checkout.ErrPaymentMissing):
		respondError(w, http.StatusConflict, "step_out_of_order", err.Error())
	case errors.Is(err, cart.ErrProductUnavailable):
		respondError(w, http.StatusNotFound, "product_unavailable", err.Error())
	case errors.Is(err, store.ErrUserNotFound):
		respondError(w, http.StatusNotFound, "user_not_found", err.Error())
	default:
		log.Printf("request failed: %v", err)
		respondError(w, http.StatusBadGateway, "store_unavailable", "backing store unavailable")
	}
}

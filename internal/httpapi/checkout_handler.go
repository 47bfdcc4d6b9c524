package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/GIUSEPPESAN21/ecommerce-platform/internal/checkout"
	"github.com/GIUSEPPESAN21/ecommerce-platform/internal/domain"
)

type CheckoutHandler struct {
	machine *checkout.Machine
	timeout time.Duration
}

func NewCheckoutHandler(machine *checkout.Machine, timeout time.Duration) *CheckoutHandler {
	return &CheckoutHandler{machine: machine, timeout: timeout}
}

type CheckoutSessionDTO struct {
	Step        string `json:"step"`
	HasShipping bool   `json:"has_shipping"`
	HasPayment  bool   `json:"has_payment"`
}

func sessionDTO(s *domain.CheckoutSession) CheckoutSessionDTO {
	return CheckoutSessionDTO{
		Step:        s.Step.String(),
		HasShipping: s.Shipping != nil,
		HasPayment:  s.Payment != nil,
	}
}

func (h *CheckoutHandler) Begin(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	session, err := h.machine.Begin(ctx, userIDFromContext(r.Context()))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, sessionDTO(session))
}

func (h *CheckoutHandler) SubmitShipping(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var info domain.ShippingInfo
	if err := json.NewDecoder(r.Body).Decode(&info); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	session, err := h.machine.SubmitShipping(ctx, userIDFromContext(r.Context()), info)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, sessionDTO(session))
}

func (h *CheckoutHandler) SubmitPayment(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var info domain.PaymentInfo
	if err := json.NewDecoder(r.Body).Decode(&info); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	session, err := h.machine.SubmitPayment(ctx, userIDFromContext(r.Context()), info)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, sessionDTO(session))
}

type ConfirmResponseDTO struct {
	OrderID string `json:"order_id"`
}

func (h *CheckoutHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	orderID, err := h.machine.Confirm(ctx, userIDFromContext(r.Context()))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, ConfirmResponseDTO{OrderID: orderID})
}

package httpapi

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/GIUSEPPESAN21/ecommerce-platform/internal/domain"
)

// OrderReader is the read side of the order store.
type OrderReader interface {
	ReadUserOrders(ctx context.Context, userID string) ([]domain.Order, error)
}

type OrdersHandler struct {
	orders  OrderReader
	timeout time.Duration
}

func NewOrdersHandler(orders OrderReader, timeout time.Duration) *OrdersHandler {
	return &OrdersHandler{orders: orders, timeout: timeout}
}

// ListOrders degrades to an empty list when the store is unreachable; the
// orders page renders empty instead of erroring.
func (h *OrdersHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := userIDFromContext(r.Context())

	orders, err := h.orders.ReadUserOrders(ctx, userID)
	if err != nil {
		log.Printf("list orders for %s: %v", userID, err)
		orders = nil
	}
	if orders == nil {
		orders = []domain.Order{}
	}

	respondJSON(w, http.StatusOK, orders)
}

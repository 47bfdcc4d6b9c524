package checkout

import (
	"context"
	"fmt"
	"log"

	"github.com/GIUSEPPESAN21/ecommerce-platform/internal/domain"
)

// OrderWriter persists orders.
type OrderWriter interface {
	WriteOrder(ctx context.Context, order *domain.Order) (string, error)
}

// CartClearer empties the cart after a successful commit. Wired to the cart
// service so the clear goes through the same per-user serialization as every
// other cart mutation.
type CartClearer interface {
	Clear(ctx context.Context, userID string) error
}

// OrderLinker records the order id on the owning user document.
type OrderLinker interface {
	AppendUserOrder(ctx context.Context, userID, orderID string) error
}

// Committer turns a reviewed cart into a durable order. The write order is
// the invariant here: the order document is persisted first, and the cart is
// cleared only after that write succeeds. A persistence failure leaves the
// cart untouched so the user can retry without losing anything.
type Committer struct {
	orders OrderWriter
	cart   CartClearer
	users  OrderLinker
}

func NewCommitter(orders OrderWriter, cart CartClearer, users OrderLinker) *Committer {
	return &Committer{orders: orders, cart: cart, users: users}
}

// PlaceOrder persists the order snapshot and, on success, empties the cart
// and records the order id on the user document. Post-persist cleanup
// failures are logged, not returned: the order is already durable and must
// not be reported as failed.
func (c *Committer) PlaceOrder(ctx context.Context, userID string, items []domain.CartItem, totals domain.Totals, shipping domain.ShippingInfo, payment domain.PaymentInfo) (string, error) {
	order := &domain.Order{
		UserID:        userID,
		Items:         append([]domain.CartItem(nil), items...),
		Totals:        totals,
		Shipping:      shipping,
		PaymentMethod: string(payment.Method),
		Status:        domain.OrderStatusPending,
	}

	orderID, err := c.orders.WriteOrder(ctx, order)
	if err != nil {
		return "", fmt.Errorf("persist order: %w", err)
	}

	if err := c.users.AppendUserOrder(ctx, userID, orderID); err != nil {
		log.Printf("append order %s to user %s: %v", orderID, userID, err)
	}
	if err := c.cart.Clear(ctx, userID); err != nil {
		log.Printf("clear cart after order %s: %v", orderID, err)
	}

	return orderID, nil
}

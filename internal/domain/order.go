package domain

import "time"

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// String representation (for logging)
func (s OrderStatus) String() string {
	return string(s)
}

// Order is created once at commit time. Items and totals are value snapshots
// and never change after creation; only the status is mutated by downstream
// fulfillment.
type Order struct {
	ID            string       `bson:"_id,omitempty" json:"id"`
	UserID        string       `bson:"user_id" json:"user_id"`
	Items         []CartItem   `bson:"items" json:"items"`
	Totals        Totals       `bson:"totals" json:"totals"`
	Shipping      ShippingInfo `bson:"shipping_info" json:"shipping_info"`
	PaymentMethod string       `bson:"payment_method" json:"payment_method"`
	Status        OrderStatus  `bson:"status" json:"status"`
	CreatedAt     time.Time    `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time    `bson:"updated_at" json:"updated_at"`
}

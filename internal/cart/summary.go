package cart

import (
	"context"

	"github.com/GIUSEPPESAN21/ecommerce-platform/internal/domain"
)

// Summary is what the UI renders on the cart page: the items plus totals
// computed from them. Totals are always derived, never stored.
type Summary struct {
	Items  []domain.CartItem `json:"items"`
	Totals domain.Totals     `json:"totals"`
}

// Summarizer pairs a cart service with the pricing configuration.
type Summarizer struct {
	cart        *Service
	taxRate     float64
	shippingFee float64
}

func NewSummarizer(cart *Service, taxRate, shippingFee float64) *Summarizer {
	return &Summarizer{cart: cart, taxRate: taxRate, shippingFee: shippingFee}
}

func (s *Summarizer) Summary(ctx context.Context, userID string) (*Summary, error) {
	c, err := s.cart.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := c.Items
	if items == nil {
		items = []domain.CartItem{}
	}

	return &Summary{
		Items:  items,
		Totals: domain.CalculateTotals(items, s.taxRate, s.shippingFee),
	}, nil
}

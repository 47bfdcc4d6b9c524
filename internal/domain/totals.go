package domain

import "github.com/shopspring/decimal"

type Totals struct {
	Subtotal float64 `bson:"subtotal" json:"subtotal"`
	Tax      float64 `bson:"tax" json:"tax"`
	Shipping float64 `bson:"shipping" json:"shipping"`
	Total    float64 `bson:"total" json:"total"`
}

// CalculateTotals derives order totals from cart items:
// subtotal = Σ(price × quantity), tax = subtotal × taxRate,
// total = subtotal + tax + shippingFee. Every figure is rounded to cents.
// Decimal arithmetic keeps repeated float prices from drifting the total.
func CalculateTotals(items []CartItem, taxRate, shippingFee float64) Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		line := decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity)))
		subtotal = subtotal.Add(line)
	}
	subtotal = subtotal.Round(2)

	tax := subtotal.Mul(decimal.NewFromFloat(taxRate)).Round(2)
	shipping := decimal.NewFromFloat(shippingFee).Round(2)
	total := subtotal.Add(tax).Add(shipping).Round(2)

	return Totals{
		Subtotal: subtotal.InexactFloat64(),
		Tax:      tax.InexactFloat64(),
		Shipping: shipping.InexactFloat64(),
		Total:    total.InexactFloat64(),
	}
}

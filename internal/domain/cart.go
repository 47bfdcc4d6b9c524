package domain

// CartItem is a snapshot of a product at the time it was added to the cart.
// Name, price and image are frozen copies; later catalog edits do not change
// what the user sees in their cart.
type CartItem struct {
	ProductID string  `bson:"product_id" json:"product_id"`
	Name      string  `bson:"name" json:"name"`
	Price     float64 `bson:"price" json:"price"`
	Image     string  `bson:"image" json:"image"`
	Quantity  int     `bson:"quantity" json:"quantity"`
}

// Cart holds the items embedded in a user document. At most one entry exists
// per product id.
type Cart struct {
	UserID string     `json:"user_id"`
	Items  []CartItem `json:"items"`
}

func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// ItemCount is the total number of units across all items.
func (c *Cart) ItemCount() int {
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

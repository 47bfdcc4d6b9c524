package domain

import "time"

type Product struct {
	ID          string         `bson:"_id,omitempty" json:"id"`
	Name        string         `bson:"name" json:"name"`
	Description string         `bson:"description" json:"description"`
	Price       float64        `bson:"price" json:"price"`
	Stock       int            `bson:"stock" json:"stock"`
	Category    string         `bson:"category,omitempty" json:"category,omitempty"`
	Images      []ProductImage `bson:"images,omitempty" json:"images,omitempty"`
	Rating      float64        `bson:"rating" json:"rating"`
	ReviewCount int            `bson:"review_count" json:"review_count"`
	Active      bool           `bson:"active" json:"active"`
	CreatedAt   time.Time      `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time      `bson:"updated_at" json:"updated_at"`
}

type ProductImage struct {
	URL string `bson:"url" json:"url"`
}

// FirstImageURL returns the primary image for cart snapshots, or "" when the
// product has no images.
func (p *Product) FirstImageURL() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0].URL
}

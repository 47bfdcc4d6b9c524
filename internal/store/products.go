package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/GIUSEPPESAN21/ecommerce-platform/internal/domain"
	"github.com/sony/gobreaker/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ProductStore reads the catalog collection. List reads go through a circuit
// breaker so that an unreachable backend fails fast instead of queueing up
// catalog page loads behind dead connections.
type ProductStore struct {
	collection *mongo.Collection
	breaker    *gobreaker.CircuitBreaker[[]domain.Product]
}

func NewProductStore(db *mongo.Database) *ProductStore {
	breaker := gobreaker.NewCircuitBreaker[[]domain.Product](gobreaker.Settings{
		Name:    "product-store",
		Timeout: 30 * time.Second,
	})
	return &ProductStore{
		collection: db.Collection("products"),
		breaker:    breaker,
	}
}

// FetchProducts returns up to limit active products, optionally scoped to a
// category. Inactive products never leave the store layer.
func (s *ProductStore) FetchProducts(ctx context.Context, category string, limit int64) ([]domain.Product, error) {
	return s.breaker.Execute(func() ([]domain.Product, error) {
		filter := bson.M{"active": true}
		if category != "" {
			filter["category"] = category
		}

		opts := options.Find().SetLimit(limit).SetSort(bson.D{{Key: "_id", Value: 1}})
		cursor, err := s.collection.Find(ctx, filter, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to query products: %w", err)
		}
		defer cursor.Close(ctx)

		var products []domain.Product
		if err := cursor.All(ctx, &products); err != nil {
			return nil, fmt.Errorf("failed to decode products: %w", err)
		}

		return products, nil
	})
}

// FetchCategories derives the category set from active products.
func (s *ProductStore) FetchCategories(ctx context.Context) ([]string, error) {
	values, err := s.collection.Distinct(ctx, "category", bson.M{
		"active":   true,
		"category": bson.M{"$nin": bson.A{"", nil}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}

	categories := make([]string, 0, len(values))
	for _, v := range values {
		if category, ok := v.(string); ok {
			categories = append(categories, category)
		}
	}
	sort.Strings(categories)

	return categories, nil
}

// FetchProduct returns a single product by id, or nil when no such product
// exists. Used for price snapshots, so it always hits the store directly.
func (s *ProductStore) FetchProduct(ctx context.Context, id string) (*domain.Product, error) {
	var product domain.Product
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return &product, nil
}

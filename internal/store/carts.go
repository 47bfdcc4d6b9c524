package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/GIUSEPPESAN21/ecommerce-platform/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrUserNotFound = errors.New("user not found")

// CartStore reads and writes the cart array embedded in a user document.
// There is no optimistic concurrency token: WriteUserCart replaces the whole
// array, so callers are responsible for serializing read-modify-write cycles
// (see cart.Service).
type CartStore struct {
	users *mongo.Collection
}

func NewCartStore(db *mongo.Database) *CartStore {
	return &CartStore{users: db.Collection("users")}
}

func (s *CartStore) ReadUserCart(ctx context.Context, userID string) ([]domain.CartItem, error) {
	var doc struct {
		Cart []domain.CartItem `bson:"cart"`
	}

	opts := options.FindOne().SetProjection(bson.M{"cart": 1})
	err := s.users.FindOne(ctx, bson.M{"_id": userID}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cart: %w", err)
	}

	return doc.Cart, nil
}

func (s *CartStore) WriteUserCart(ctx context.Context, userID string, items []domain.CartItem) error {
	if items == nil {
		items = []domain.CartItem{}
	}

	update := bson.M{"$set": bson.M{
		"cart":       items,
		"updated_at": time.Now(),
	}}

	result, err := s.users.UpdateOne(ctx, bson.M{"_id": userID}, update)
	if err != nil {
		return fmt.Errorf("failed to write cart: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrUserNotFound
	}

	return nil
}

// AppendUserOrder links a placed order to the user document.
func (s *CartStore) AppendUserOrder(ctx context.Context, userID, orderID string) error {
	update := bson.M{
		"$push": bson.M{"orders": orderID},
		"$set":  bson.M{"updated_at": time.Now()},
	}

	result, err := s.users.UpdateOne(ctx, bson.M{"_id": userID}, update)
	if err != nil {
		return fmt.Errorf("failed to append order: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrUserNotFound
	}

	return nil
}

// EnsureUser creates an empty user document (with an empty cart) if none
// exists. Registration itself is out of scope; this is what the engine needs
// so a first AddItem has a document to write into.
func (s *CartStore) EnsureUser(ctx context.Context, userID string) error {
	now := time.Now()
	update := bson.M{
		"$setOnInsert": bson.M{
			"cart":       []domain.CartItem{},
			"orders":     []string{},
			"created_at": now,
			"updated_at": now,
		},
	}
	opts := options.Update().SetUpsert(true)

	if _, err := s.users.UpdateOne(ctx, bson.M{"_id": userID}, update, opts); err != nil {
		return fmt.Errorf("failed to ensure user: %w", err)
	}

	return nil
}

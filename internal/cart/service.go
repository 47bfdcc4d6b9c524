package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/GIUSEPPESAN21/ecommerce-platform/internal/domain"
	"github.com/GIUSEPPESAN21/ecommerce-platform/internal/store"
)

var ErrProductUnavailable = errors.New("product is not available")

// CartStore defines the user-cart document operations the service consumes.
// WriteUserCart does not upsert, so a user without a document must be
// provisioned through EnsureUser before the first write.
type CartStore interface {
	ReadUserCart(ctx context.Context, userID string) ([]domain.CartItem, error)
	WriteUserCart(ctx context.Context, userID string, items []domain.CartItem) error
	EnsureUser(ctx context.Context, userID string) error
}

// ProductFetcher resolves the live product record for price snapshots.
// This is the direct store path, not the catalog cache: a snapshot taken
// from a minutes-old cache entry could freeze an outdated price into the
// cart.
type ProductFetcher interface {
	FetchProduct(ctx context.Context, id string) (*domain.Product, error)
}

// Service mutates carts with a read-modify-write cycle over the whole
// embedded cart array. The store has no optimistic concurrency token, so
// mutations for the same user are serialized through a per-user mutex;
// without it, two rapid clicks could each read the same cart and the later
// write would silently drop the earlier one. The lock only covers this
// process — concurrent writers in other processes can still race.
type Service struct {
	carts       CartStore
	products    ProductFetcher
	maxQuantity int

	mu        sync.Mutex
	userLocks map[string]*sync.Mutex
}

func NewService(carts CartStore, products ProductFetcher, maxQuantity int) *Service {
	return &Service{
		carts:       carts,
		products:    products,
		maxQuantity: maxQuantity,
		userLocks:   make(map[string]*sync.Mutex),
	}
}

func (s *Service) userLock(userID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.userLocks[userID]
	if !ok {
		lock = &sync.Mutex{}
		s.userLocks[userID] = lock
	}
	return lock
}

// Get returns the user's cart. A user with no document yet simply has an
// empty cart.
func (s *Service) Get(ctx context.Context, userID string) (*domain.Cart, error) {
	items, err := s.carts.ReadUserCart(ctx, userID)
	if errors.Is(err, store.ErrUserNotFound) {
		return &domain.Cart{UserID: userID}, nil
	}
	if err != nil {
		return nil, err
	}

	return &domain.Cart{UserID: userID, Items: items}, nil
}

// AddItem adds quantity units of a product. If the product is already in the
// cart its quantity is incremented; otherwise the current name, price and
// image are snapshotted from the store and a new entry appended. The cart
// never holds two entries for the same product id.
func (s *Service) AddItem(ctx context.Context, userID, productID string, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}

	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	items, err := s.carts.ReadUserCart(ctx, userID)
	if errors.Is(err, store.ErrUserNotFound) {
		// First interaction: create the user document so the write below
		// has something to land in.
		if err := s.carts.EnsureUser(ctx, userID); err != nil {
			return fmt.Errorf("provision user document: %w", err)
		}
		items = nil
	} else if err != nil {
		return err
	}

	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity = s.clamp(items[i].Quantity + quantity)
			return s.carts.WriteUserCart(ctx, userID, items)
		}
	}

	product, err := s.products.FetchProduct(ctx, productID)
	if err != nil {
		return fmt.Errorf("fetch product for cart: %w", err)
	}
	if product == nil || !product.Active {
		return ErrProductUnavailable
	}

	items = append(items, domain.CartItem{
		ProductID: productID,
		Name:      product.Name,
		Price:     product.Price,
		Image:     product.FirstImageURL(),
		Quantity:  s.clamp(quantity),
	})

	return s.carts.WriteUserCart(ctx, userID, items)
}

// UpdateItem overwrites the quantity of a cart entry. A quantity of zero or
// less removes the entry; removing an absent entry is a success no-op. A user
// without a document has an empty cart, so every update is a no-op for them.
func (s *Service) UpdateItem(ctx context.Context, userID, productID string, quantity int) error {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	items, err := s.carts.ReadUserCart(ctx, userID)
	if errors.Is(err, store.ErrUserNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if quantity <= 0 {
		remaining := items[:0:0]
		for _, item := range items {
			if item.ProductID != productID {
				remaining = append(remaining, item)
			}
		}
		if len(remaining) == len(items) {
			return nil // nothing to remove
		}
		return s.carts.WriteUserCart(ctx, userID, remaining)
	}

	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity = s.clamp(quantity)
			return s.carts.WriteUserCart(ctx, userID, items)
		}
	}

	return nil
}

// Clear empties the cart. A user without a document already has an empty
// cart, so clearing them succeeds without a write.
func (s *Service) Clear(ctx context.Context, userID string) error {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	err := s.carts.WriteUserCart(ctx, userID, []domain.CartItem{})
	if errors.Is(err, store.ErrUserNotFound) {
		return nil
	}
	return err
}

func (s *Service) clamp(quantity int) int {
	if s.maxQuantity > 0 && quantity > s.maxQuantity {
		return s.maxQuantity
	}
	return quantity
}

package catalog

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/GIUSEPPESAN21/ecommerce-platform/internal/cache"
	"github.com/GIUSEPPESAN21/ecommerce-platform/internal/domain"
)

// ProductReader is the slice of the store the catalog consumes.
type ProductReader interface {
	FetchProducts(ctx context.Context, category string, limit int64) ([]domain.Product, error)
	FetchCategories(ctx context.Context) ([]string, error)
}

// maxCandidates is how many products are fetched into a category's cache
// entry. It is deliberately larger than any page-size limit callers pass so
// that search filtering happens over the full candidate set, never over an
// already-truncated prefix.
const maxCandidates = 100

const defaultLimit = 12

const categoriesKey = "categories"

type Filter struct {
	Category    string
	SearchQuery string
	Limit       int
}

// Service serves catalog reads with bounded staleness. Product sets are
// cached per category, the category list globally. Staleness is bounded by
// TTL alone; there is no invalidation path because catalog writes are rare
// and happen outside this process.
type Service struct {
	store       ProductReader
	products    *cache.Cache[[]domain.Product]
	categories  *cache.Cache[[]string]
	productTTL  time.Duration
	categoryTTL time.Duration
}

func NewService(store ProductReader, productTTL, categoryTTL time.Duration) *Service {
	return &Service{
		store:       store,
		products:    cache.New[[]domain.Product](),
		categories:  cache.New[[]string](),
		productTTL:  productTTL,
		categoryTTL: categoryTTL,
	}
}

// NewServiceWithClock is for tests that need to control TTL expiry.
func NewServiceWithClock(store ProductReader, productTTL, categoryTTL time.Duration, clock cache.Clock) *Service {
	return &Service{
		store:       store,
		products:    cache.NewWithClock[[]domain.Product](clock),
		categories:  cache.NewWithClock[[]string](clock),
		productTTL:  productTTL,
		categoryTTL: categoryTTL,
	}
}

// GetProducts returns up to f.Limit products for the category, filtered by
// the search query. The search filter runs after the cached fetch and before
// the limit; limiting first would hide matches that sit past the first page
// of unfiltered results. A backend failure degrades to an empty catalog.
func (s *Service) GetProducts(ctx context.Context, f Filter) []domain.Product {
	limit := f.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	products, err := s.products.GetOrFetch(ctx, f.Category, s.productTTL, func(ctx context.Context) ([]domain.Product, error) {
		return s.store.FetchProducts(ctx, f.Category, maxCandidates)
	})
	if err != nil {
		log.Printf("catalog: fetch products (category=%q): %v", f.Category, err)
		return []domain.Product{}
	}

	if query := strings.ToLower(strings.TrimSpace(f.SearchQuery)); query != "" {
		matched := make([]domain.Product, 0, len(products))
		for _, p := range products {
			if strings.Contains(strings.ToLower(p.Name), query) ||
				strings.Contains(strings.ToLower(p.Description), query) {
				matched = append(matched, p)
			}
		}
		products = matched
	}

	if len(products) > limit {
		products = products[:limit]
	}
	return products
}

// GetCategories returns the sorted category set. Categories change far less
// often than inventory, so they carry the longer TTL.
func (s *Service) GetCategories(ctx context.Context) []string {
	categories, err := s.categories.GetOrFetch(ctx, categoriesKey, s.categoryTTL, func(ctx context.Context) ([]string, error) {
		return s.store.FetchCategories(ctx)
	})
	if err != nil {
		log.Printf("catalog: fetch categories: %v", err)
		return []string{}
	}

	return categories
}

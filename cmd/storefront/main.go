package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/GIUSEPPESAN21/ecommerce-platform/internal/cart"
	"github.com/GIUSEPPESAN21/ecommerce-platform/internal/catalog"
	"github.com/GIUSEPPESAN21/ecommerce-platform/internal/checkout"
	"github.com/GIUSEPPESAN21/ecommerce-platform/internal/config"
	"github.com/GIUSEPPESAN21/ecommerce-platform/internal/httpapi"
	"github.com/GIUSEPPESAN21/ecommerce-platform/internal/store"
)

func main() {
	cfg := config.Load()

	ctx := context.Background()
	db, err := store.Connect(ctx, store.ConnectConfig{
		URI:            cfg.MongoURI,
		Database:       cfg.MongoDBName,
		ConnectTimeout: cfg.MongoConnectTimeout,
		SelectTimeout:  cfg.MongoSelectTimeout,
		MaxPoolSize:    uint64(cfg.MongoMaxPoolSize),
		MinPoolSize:    uint64(cfg.MongoMinPoolSize),
	})
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	log.Printf("Connected to MongoDB at %s", cfg.MongoURI)

	// Store adapters; the store client is wired explicitly, nothing hangs
	// off a process-wide singleton.
	productStore := store.NewProductStore(db)
	cartStore := store.NewCartStore(db)
	orderStore := store.NewOrderStore(db)

	if err := orderStore.CreateIndexes(ctx); err != nil {
		log.Printf("Failed to create order indexes: %v", err)
	}

	// Core services
	catalogService := catalog.NewService(productStore, cfg.ProductCacheTTL, cfg.CategoryCacheTTL)
	cartService := cart.NewService(cartStore, productStore, cfg.MaxQuantityPerItem)
	summarizer := cart.NewSummarizer(cartService, cfg.TaxRate, cfg.FlatShippingFee)

	sessions := checkout.NewSessionStore()
	committer := checkout.NewCommitter(orderStore, cartService, cartStore)
	machine := checkout.NewMachine(sessions, cartService, productStore, committer, cfg.TaxRate, cfg.FlatShippingFee)

	router := httpapi.NewRouter(httpapi.Handlers{
		Catalog:  httpapi.NewCatalogHandler(catalogService, cfg.StoreTimeout),
		Cart:     httpapi.NewCartHandler(cartService, summarizer, cfg.MaxQuantityPerItem, cfg.StoreTimeout),
		Checkout: httpapi.NewCheckoutHandler(machine, cfg.StoreTimeout),
		Orders:   httpapi.NewOrdersHandler(orderStore, cfg.StoreTimeout),
	}, cfg.RequestTimeout)

	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Printf("Storefront listening on port %s", cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down storefront...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP shutdown: %v", err)
	}
	if err := db.Client().Disconnect(shutdownCtx); err != nil {
		log.Printf("MongoDB disconnect: %v", err)
	}
	log.Println("Storefront stopped")
}

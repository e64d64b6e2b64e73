package main

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/your-org/storefront-client/internal/config"
	"github.com/your-org/storefront-client/internal/domain/cart"
	"github.com/your-org/storefront-client/internal/domain/session"
	"github.com/your-org/storefront-client/internal/infrastructure/api"
	"github.com/your-org/storefront-client/internal/infrastructure/storage"
	"github.com/your-org/storefront-client/internal/pkg/logging"
	"github.com/your-org/storefront-client/internal/store"
)

// Headless smoke flow: construct the engine, restore the session, load the
// catalog the way the storefront's landing page does (categories and
// products concurrently), then exercise the cart and report totals.
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logging.New(cfg)
	logger.Infof("Starting %s v%s against %s", cfg.App.Name, cfg.App.Version, cfg.API.BaseURL)

	kv, err := storage.New(cfg)
	if err != nil {
		log.Fatalf("Failed to open storage backend: %v", err)
	}

	calc, err := cart.NewCalculator(cfg)
	if err != nil {
		log.Fatalf("Failed to build pricing calculator: %v", err)
	}

	client := api.New(cfg, logger)
	sessions := session.NewManager(kv, client, logger)

	st := store.New(store.Deps{
		Client:     client,
		Sessions:   sessions,
		Calculator: calc,
		Storage:    kv,
		Logger:     logger,
	})
	defer st.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := sessions.Restore(ctx); err != nil {
		logger.Warnf("Session restore failed: %v", err)
	}
	if sessions.IsAuthenticated() {
		if err := sessions.Verify(ctx); err != nil {
			logger.Infof("Stored session rejected: %s", api.UserMessage(err))
		} else {
			logger.Infof("Welcome back, %s", sessions.Current().User.Name)
		}
	}

	// Categories and products load concurrently on page entry; their fetch
	// states are independent.
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		if err := st.FetchCategories(ctx); err != nil {
			logger.Warnf("Categories: %s", api.UserMessage(err))
		}
	}()
	go func() {
		defer wg.Done()
		if err := st.FetchProducts(ctx, api.ProductQuery{Limit: 25}); err != nil {
			logger.Warnf("Products: %s", api.UserMessage(err))
		}
	}()
	wg.Wait()

	products := st.Products()
	logger.Infof("Catalog loaded: %d of %d products, %d categories (state %s)",
		len(products.Payload), products.Total, len(st.Categories().Payload), products.State)

	if products.State != store.StateFetched || len(products.Payload) == 0 {
		logger.Warn("No products available, skipping cart exercise")
		return
	}

	first := products.Payload[0]
	st.AddToCart(first)
	st.AddToCart(first)
	if len(products.Payload) > 1 {
		st.AddToCart(products.Payload[1])
	}

	totals := st.Totals()
	logger.Infof("Cart: %d line items, %d units, subtotal %s, discount %s, total %s",
		len(st.Cart().Items), st.Cart().TotalQuantity(),
		totals.Subtotal.StringFixed(2), totals.Discount.StringFixed(2), totals.Total.StringFixed(2))
}

package store

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-client/internal/domain/cart"
	"github.com/your-org/storefront-client/internal/domain/catalog"
	"github.com/your-org/storefront-client/internal/domain/session"
	"github.com/your-org/storefront-client/internal/infrastructure/api"
	"github.com/your-org/storefront-client/internal/infrastructure/storage"
)

// Store is the application state container. It is constructed explicitly and
// handed to callers (there is no package-level instance) and owns the cart
// state, the fetch lifecycles for remote resources and the session manager.
//
// Cart transitions are synchronous and applied under the mutex. Fetches run
// on the caller's goroutine and may overlap for independent resources; each
// resource carries a generation counter so a superseded fetch (a newer one
// started while it was in flight) has its result discarded instead of
// overwriting fresher state.
type Store struct {
	client   *api.Client
	sessions *session.Manager
	calc     *cart.Calculator
	storage  storage.Store
	logger   *logrus.Logger

	mu        sync.Mutex
	cartState cart.State

	products   Resource[[]catalog.Product]
	categories Resource[[]catalog.Category]
	orders     Resource[[]api.Order]

	productGen  uint64
	categoryGen uint64
	orderGen    uint64

	cancelsMu sync.Mutex
	cancels   map[string]context.CancelFunc
}

// Deps are the collaborators a Store is built from.
type Deps struct {
	Client     *api.Client
	Sessions   *session.Manager
	Calculator *cart.Calculator
	Storage    storage.Store
	Logger     *logrus.Logger
}

// New constructs a Store. Resources start idle with empty payloads.
func New(deps Deps) *Store {
	return &Store{
		client:     deps.Client,
		sessions:   deps.Sessions,
		calc:       deps.Calculator,
		storage:    deps.Storage,
		logger:     deps.Logger,
		products:   Resource[[]catalog.Product]{State: StateIdle},
		categories: Resource[[]catalog.Category]{State: StateIdle},
		orders:     Resource[[]api.Order]{State: StateIdle},
		cancels:    make(map[string]context.CancelFunc),
	}
}

// Sessions exposes the session manager for route guards and checkout.
func (s *Store) Sessions() *session.Manager {
	return s.sessions
}

// Close cancels in-flight fetches and releases the storage backend.
func (s *Store) Close() error {
	s.CancelFetches()
	return s.storage.Close()
}

// Cart state

// Cart returns a snapshot of the cart state.
func (s *Store) Cart() cart.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cartState
}

// Totals derives the pricing breakdown from the current cart state.
func (s *Store) Totals() cart.Totals {
	return s.calc.Calculate(s.Cart())
}

// SetCart replaces the line-item collection (post-load or post-order clear).
func (s *Store) SetCart(items []cart.LineItem) {
	s.apply("set_cart", func(state cart.State) cart.State {
		return cart.SetItems(state, items)
	})
}

// AddToCart adds a product, merging with an existing line item by id.
func (s *Store) AddToCart(product catalog.Product) {
	s.apply("add_to_cart", func(state cart.State) cart.State {
		return cart.Add(state, product)
	})
}

// RemoveFromCart removes a product's line item; absent ids are a no-op.
func (s *Store) RemoveFromCart(productID int) {
	s.apply("remove_from_cart", func(state cart.State) cart.State {
		return cart.Remove(state, productID)
	})
}

// UpdateCartItem merges a partial count/checked update into a line item.
func (s *Store) UpdateCartItem(productID int, update cart.Update) {
	s.apply("update_cart_item", func(state cart.State) cart.State {
		return cart.UpdateItem(state, productID, update)
	})
}

// ToggleCart flips (or explicitly sets) the cart dropdown flag.
func (s *Store) ToggleCart(explicit *bool) {
	s.apply("toggle_cart", func(state cart.State) cart.State {
		return cart.Toggle(state, explicit)
	})
}

func (s *Store) apply(action string, transition func(cart.State) cart.State) {
	s.mu.Lock()
	before := len(s.cartState.Items)
	s.cartState = transition(s.cartState)
	after := len(s.cartState.Items)
	s.mu.Unlock()

	s.logger.WithFields(logrus.Fields{
		"action":       action,
		"items_before": before,
		"items_after":  after,
	}).Debug("cart transition")
}

// Fetch resources

// Products returns the product resource snapshot.
func (s *Store) Products() Resource[[]catalog.Product] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.products
}

// Categories returns the category resource snapshot.
func (s *Store) Categories() Resource[[]catalog.Category] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.categories
}

// Orders returns the order-history resource snapshot.
func (s *Store) Orders() Resource[[]api.Order] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orders
}

// FetchProducts loads a page of products through the retry-capable fetcher.
// Starting a new product fetch supersedes any in-flight one: the older
// fetch is cancelled and its result, should it still arrive, is discarded.
func (s *Store) FetchProducts(ctx context.Context, query api.ProductQuery) error {
	ctx, gen := s.beginFetch(ctx, "products", &s.productGen, func() { s.products.begin() })

	list, err := s.client.ListProducts(ctx, query)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.productGen {
		s.logger.WithField("resource", "products").Debug("discarding superseded fetch result")
		return err
	}
	if err != nil {
		s.products.fail(api.UserMessage(err))
		return err
	}
	s.products.succeed(list.Products, list.Total)
	return nil
}

// FetchCategories loads all categories.
func (s *Store) FetchCategories(ctx context.Context) error {
	ctx, gen := s.beginFetch(ctx, "categories", &s.categoryGen, func() { s.categories.begin() })

	categories, err := s.client.ListCategories(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.categoryGen {
		s.logger.WithField("resource", "categories").Debug("discarding superseded fetch result")
		return err
	}
	if err != nil {
		s.categories.fail(api.UserMessage(err))
		return err
	}
	s.categories.succeed(categories, len(categories))
	return nil
}

// FetchOrders loads the authenticated user's order history.
func (s *Store) FetchOrders(ctx context.Context) error {
	if err := s.sessions.RequireAuth(); err != nil {
		return err
	}
	ctx, gen := s.beginFetch(ctx, "orders", &s.orderGen, func() { s.orders.begin() })

	orders, err := s.client.ListOrders(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.orderGen {
		s.logger.WithField("resource", "orders").Debug("discarding superseded fetch result")
		return err
	}
	if err != nil {
		s.orders.fail(api.UserMessage(err))
		return err
	}
	s.orders.succeed(orders, len(orders))
	return nil
}

// CancelFetches cancels every in-flight fetch, e.g. on navigation or
// shutdown.
func (s *Store) CancelFetches() {
	s.cancelsMu.Lock()
	defer s.cancelsMu.Unlock()
	for resource, cancel := range s.cancels {
		cancel()
		delete(s.cancels, resource)
	}
}

// beginFetch marks the resource as fetching, bumps its generation and
// replaces any in-flight fetch's context with a fresh cancellable one.
func (s *Store) beginFetch(ctx context.Context, resource string, gen *uint64, begin func()) (context.Context, uint64) {
	s.mu.Lock()
	*gen++
	current := *gen
	begin()
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	s.cancelsMu.Lock()
	if prev, ok := s.cancels[resource]; ok {
		prev()
	}
	s.cancels[resource] = cancel
	s.cancelsMu.Unlock()

	s.logger.WithFields(logrus.Fields{
		"resource":   resource,
		"generation": current,
	}).Debug("fetch started")
	return ctx, current
}

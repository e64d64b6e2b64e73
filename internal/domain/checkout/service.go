package checkout

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-client/internal/domain/cart"
	"github.com/your-org/storefront-client/internal/infrastructure/api"
	"github.com/your-org/storefront-client/internal/store"
)

var (
	// ErrNoCheckedItems rejects an order with nothing selected for checkout.
	ErrNoCheckedItems = errors.New("checkout: no items selected")
	// ErrNoAddress rejects an order without a shipping address.
	ErrNoAddress = errors.New("checkout: no address selected")
	// ErrNoCard rejects an order without a payment card.
	ErrNoCard = errors.New("checkout: no payment card selected")
)

// Service ties the cart engine, the pricing calculator and the order fetcher
// together: it turns the current cart plus the user's address and card
// selection into an order submission.
type Service struct {
	store  *store.Store
	client *api.Client
	logger *logrus.Logger
}

// NewService creates a checkout service.
func NewService(st *store.Store, client *api.Client, logger *logrus.Logger) *Service {
	return &Service{
		store:  st,
		client: client,
		logger: logger,
	}
}

// Summary is the checkout overview shown before payment.
type Summary struct {
	Items  []cart.LineItem
	Totals cart.Totals
}

// Confirmation is the result of a successfully placed order.
type Confirmation struct {
	Order  api.Order
	Totals cart.Totals
}

// Summary returns the checked line items and the derived pricing breakdown.
func (s *Service) Summary() Summary {
	state := s.store.Cart()
	checked := make([]cart.LineItem, 0, len(state.Items))
	for _, item := range state.Items {
		if item.Checked {
			checked = append(checked, item)
		}
	}
	return Summary{
		Items:  checked,
		Totals: s.store.Totals(),
	}
}

// PlaceOrder submits the checked cart items as an order. On success the cart
// is cleared; on failure it is left untouched so the user can retry without
// re-adding items. The submission itself is single-shot; see the order
// fetcher for why creates are not auto-retried.
func (s *Service) PlaceOrder(ctx context.Context, addressID int, card api.Card, ccv string) (Confirmation, error) {
	if err := s.store.Sessions().RequireAuth(); err != nil {
		return Confirmation{}, err
	}
	if addressID <= 0 {
		return Confirmation{}, ErrNoAddress
	}
	if card.CardNo == "" {
		return Confirmation{}, ErrNoCard
	}

	summary := s.Summary()
	if len(summary.Items) == 0 {
		return Confirmation{}, ErrNoCheckedItems
	}

	products := make([]api.OrderProduct, 0, len(summary.Items))
	for _, item := range summary.Items {
		products = append(products, api.OrderProduct{
			ProductID: item.Product.ID,
			Count:     item.Count,
			Detail:    item.Product.Description,
		})
	}

	req := api.CreateOrderRequest{
		AddressID:       addressID,
		OrderDate:       time.Now().UTC().Format(time.RFC3339),
		CardNo:          card.CardNo,
		CardName:        card.NameOnCard,
		CardExpireMonth: card.ExpireMonth,
		CardExpireYear:  card.ExpireYear,
		CardCCV:         ccv,
		Price:           summary.Totals.Total,
		Products:        products,
	}

	order, err := s.client.CreateOrder(ctx, req)
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"address_id": addressID,
			"error":      err.Error(),
		}).Warn("order submission failed, cart left untouched")
		return Confirmation{}, err
	}

	s.store.SetCart(nil)
	s.logger.WithFields(logrus.Fields{
		"order_id": order.ID,
		"total":    summary.Totals.Total.StringFixed(2),
	}).Info("order placed")

	return Confirmation{Order: order, Totals: summary.Totals}, nil
}

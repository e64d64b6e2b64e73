package api

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"
)

// OrderProduct is one purchased line in an order submission.
type OrderProduct struct {
	ProductID int    `json:"product_id"`
	Count     int    `json:"count"`
	Detail    string `json:"detail"`
}

// CreateOrderRequest is the order submission payload.
type CreateOrderRequest struct {
	AddressID       int             `json:"address_id"`
	OrderDate       string          `json:"order_date"`
	CardNo          string          `json:"card_no"`
	CardName        string          `json:"card_name"`
	CardExpireMonth int             `json:"card_expire_month"`
	CardExpireYear  int             `json:"card_expire_year"`
	CardCCV         string          `json:"card_ccv"`
	Price           decimal.Decimal `json:"price"`
	Products        []OrderProduct  `json:"products"`
}

// Order is a placed order as returned by the server.
type Order struct {
	ID          int             `json:"id"`
	OrderNumber string          `json:"order_number"`
	AddressID   int             `json:"address_id"`
	OrderDate   string          `json:"order_date"`
	CardNo      string          `json:"card_no"`
	CardName    string          `json:"card_name"`
	Price       decimal.Decimal `json:"price"`
	Products    []OrderProduct  `json:"products"`
}

// ListOrders fetches the order history of the authenticated user, retrying
// transient failures within the orders budget.
func (c *Client) ListOrders(ctx context.Context) ([]Order, error) {
	return doWithRetry(ctx, c.orders, c.sleep, c.logger, "list orders", func(ctx context.Context) ([]Order, error) {
		var orders []Order
		if err := c.do(ctx, http.MethodGet, "/order", nil, nil, &orders); err != nil {
			return nil, err
		}
		return orders, nil
	})
}

// CreateOrder submits an order. Deliberately single-shot: replaying a create
// that may already have been applied is worse than surfacing the failure, so
// the retry budget covers reads only and the user re-submits explicitly.
func (c *Client) CreateOrder(ctx context.Context, req CreateOrderRequest) (Order, error) {
	var order Order
	if err := c.do(ctx, http.MethodPost, "/order", nil, req, &order); err != nil {
		return Order{}, err
	}
	return order, nil
}

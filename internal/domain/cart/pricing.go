package cart

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/your-org/storefront-client/internal/config"
)

// Totals is the derived pricing breakdown for a cart. It is computed on
// demand and never stored.
type Totals struct {
	Subtotal     decimal.Decimal `json:"subtotal"`
	ShippingCost decimal.Decimal `json:"shipping_cost"`
	Discount     decimal.Decimal `json:"discount"`
	Total        decimal.Decimal `json:"total"`
}

// Calculator derives checkout totals from cart state. Only checked line
// items contribute to the subtotal. Shipping is waived (as a discount equal
// to the shipping cost) once the subtotal strictly exceeds the free-shipping
// threshold.
type Calculator struct {
	ShippingCost          decimal.Decimal
	FreeShippingThreshold decimal.Decimal
}

// NewCalculator parses the pricing constants out of configuration.
func NewCalculator(cfg *config.Config) (*Calculator, error) {
	shipping, err := decimal.NewFromString(cfg.Pricing.ShippingCost)
	if err != nil {
		return nil, fmt.Errorf("invalid shipping cost %q: %w", cfg.Pricing.ShippingCost, err)
	}
	threshold, err := decimal.NewFromString(cfg.Pricing.FreeShippingThreshold)
	if err != nil {
		return nil, fmt.Errorf("invalid free shipping threshold %q: %w", cfg.Pricing.FreeShippingThreshold, err)
	}
	return &Calculator{
		ShippingCost:          shipping,
		FreeShippingThreshold: threshold,
	}, nil
}

// Subtotal sums price x count over checked items.
func (c *Calculator) Subtotal(state State) decimal.Decimal {
	subtotal := decimal.Zero
	for _, item := range state.Items {
		if !item.Checked {
			continue
		}
		subtotal = subtotal.Add(item.Product.Price.Mul(decimal.NewFromInt(int64(item.Count))))
	}
	return subtotal
}

// Discount is the shipping cost when the subtotal exceeds the free-shipping
// threshold, zero otherwise. The comparison is strict: a subtotal exactly at
// the threshold still pays shipping.
func (c *Calculator) Discount(state State) decimal.Decimal {
	if c.Subtotal(state).GreaterThan(c.FreeShippingThreshold) {
		return c.ShippingCost
	}
	return decimal.Zero
}

// Calculate produces the full breakdown. An empty or all-unchecked cart
// totals to the shipping cost alone; that quirk is inherited from the
// original storefront and kept as-is (checkout refuses to submit such an
// order, see the checkout service).
func (c *Calculator) Calculate(state State) Totals {
	subtotal := c.Subtotal(state)
	discount := decimal.Zero
	if subtotal.GreaterThan(c.FreeShippingThreshold) {
		discount = c.ShippingCost
	}
	return Totals{
		Subtotal:     subtotal,
		ShippingCost: c.ShippingCost,
		Discount:     discount,
		Total:        subtotal.Add(c.ShippingCost).Sub(discount),
	}
}

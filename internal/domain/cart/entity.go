package cart

import "github.com/your-org/storefront-client/internal/domain/catalog"

// LineItem is one product-plus-quantity entry in the cart.
// Count never drops below 1; Checked marks the item as included in the
// checkout total.
type LineItem struct {
	Product catalog.Product `json:"product"`
	Count   int             `json:"count"`
	Checked bool            `json:"checked"`
}

// State is the full cart state: the ordered line items (unique by product id)
// and the transient dropdown-visibility flag. IsOpen is never persisted.
type State struct {
	Items  []LineItem `json:"items"`
	IsOpen bool       `json:"-"`
}

// Update is a partial line-item update. Nil fields are left untouched.
type Update struct {
	Count   *int
	Checked *bool
}

// TotalQuantity is the sum of counts over all line items.
func (s State) TotalQuantity() int {
	total := 0
	for _, item := range s.Items {
		total += item.Count
	}
	return total
}

// Find returns the line item for a product id, or false if absent.
func (s State) Find(productID int) (LineItem, bool) {
	for _, item := range s.Items {
		if item.Product.ID == productID {
			return item, true
		}
	}
	return LineItem{}, false
}

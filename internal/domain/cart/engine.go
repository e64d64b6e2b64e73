package cart

import "github.com/your-org/storefront-client/internal/domain/catalog"

// Pure state transitions. Each returns a new State and leaves its input
// untouched, so a caller holding the previous state never observes a
// half-applied transition.

// SetItems replaces the entire line-item collection. An empty or nil slice is
// a valid (empty) cart. Counts are clamped to the floor of 1 and duplicate
// product ids are merged, so no caller can construct a state the other
// transitions would not produce themselves.
func SetItems(state State, items []LineItem) State {
	next := state
	next.Items = make([]LineItem, 0, len(items))
	for _, item := range items {
		if item.Count < 1 {
			item.Count = 1
		}
		if idx := indexOf(next.Items, item.Product.ID); idx >= 0 {
			next.Items[idx].Count += item.Count
			continue
		}
		next.Items = append(next.Items, item)
	}
	return next
}

// Add puts a product into the cart. If a line item for the product already
// exists its count is incremented and its checked flag preserved; otherwise a
// new line item is appended with count 1, checked true. Adding the same
// product twice therefore yields one line item with count 2, never two
// entries.
func Add(state State, product catalog.Product) State {
	next := state
	if idx := indexOf(state.Items, product.ID); idx >= 0 {
		next.Items = cloneItems(state.Items)
		next.Items[idx].Count++
		return next
	}
	next.Items = append(cloneItems(state.Items), LineItem{
		Product: product,
		Count:   1,
		Checked: true,
	})
	return next
}

// Remove drops the line item for a product id. Removing an absent product is
// a no-op, not an error.
func Remove(state State, productID int) State {
	idx := indexOf(state.Items, productID)
	if idx < 0 {
		return state
	}
	next := state
	next.Items = make([]LineItem, 0, len(state.Items)-1)
	next.Items = append(next.Items, state.Items[:idx]...)
	next.Items = append(next.Items, state.Items[idx+1:]...)
	return next
}

// UpdateItem merges a partial update into the matching line item; a no-op if
// the product is not in the cart. A count below 1 is clamped to 1; the
// engine owns the floor, callers do not pre-check.
func UpdateItem(state State, productID int, update Update) State {
	idx := indexOf(state.Items, productID)
	if idx < 0 {
		return state
	}
	next := state
	next.Items = cloneItems(state.Items)
	if update.Count != nil {
		count := *update.Count
		if count < 1 {
			count = 1
		}
		next.Items[idx].Count = count
	}
	if update.Checked != nil {
		next.Items[idx].Checked = *update.Checked
	}
	return next
}

// Toggle sets the dropdown-visibility flag to the explicit value if one is
// given, otherwise flips it.
func Toggle(state State, explicit *bool) State {
	next := state
	if explicit != nil {
		next.IsOpen = *explicit
		return next
	}
	next.IsOpen = !state.IsOpen
	return next
}

func indexOf(items []LineItem, productID int) int {
	for i, item := range items {
		if item.Product.ID == productID {
			return i
		}
	}
	return -1
}

func cloneItems(items []LineItem) []LineItem {
	cloned := make([]LineItem, len(items))
	copy(cloned, items)
	return cloned
}

// internal/domain/cart/entity.go
package cart

import "sort"

// Item sources identify which catalog section added an item
const (
	SourceGroceries = "groceries"
	SourceAgriInput = "agri-input"
)

// Item represents a cart line in the local persisted store. The local
// store owns these entries; the remote cart is a best-effort mirror.
type Item struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Image       string  `json:"image,omitempty"`
	Description string  `json:"description,omitempty"`
	Quantity    int     `json:"quantity"`
	Source      string  `json:"source,omitempty"`
}

// LineTotal returns price * quantity for this line
func (i Item) LineTotal() float64 {
	return i.Price * float64(i.Quantity)
}

// Totals represents calculated cart totals
type Totals struct {
	ItemCount     int     `json:"item_count"`     // Number of unique items
	TotalQuantity int     `json:"total_quantity"` // Sum of all quantities
	SubTotal      float64 `json:"sub_total"`
}

// CalculateTotals sums up cart totals over the given items
func CalculateTotals(items []Item) Totals {
	var totals Totals

	totals.ItemCount = len(items)
	for _, item := range items {
		totals.TotalQuantity += item.Quantity
		totals.SubTotal += item.LineTotal()
	}

	return totals
}

// SyncResult reports the outcome of one reconciliation pass. It is
// transient and never persisted.
type SyncResult struct {
	LocalItems   []Item   `json:"local_items"`
	BackendItems []Item   `json:"backend_items"`
	Synced       bool     `json:"synced"`
	Success      bool     `json:"success"`
	Issues       []string `json:"issues,omitempty"`
}

// sortByID orders items by product id in place. Comparison between the
// local and backend carts is order-independent, so both sides are
// sorted before comparing.
func sortByID(items []Item) {
	sort.Slice(items, func(i, j int) bool {
		return items[i].ID < items[j].ID
	})
}

// sameContents reports whether both item lists carry the same
// (productId, quantity) pairs. Both slices must already be sorted.
func sameContents(local, backend []Item) bool {
	if len(local) != len(backend) {
		return false
	}
	for i := range local {
		if local[i].ID != backend[i].ID || local[i].Quantity != backend[i].Quantity {
			return false
		}
	}
	return true
}

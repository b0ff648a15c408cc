package domain

// CartItem is a product line in the cart. The embedded Product keeps the
// item's JSON shape identical to a Product plus a quantity field. Quantity
// is never persisted as zero or negative: removal, not a zero quantity,
// represents absence.
type CartItem struct {
	Product
	Quantity int `json:"quantity"`
}

// SnapshotItems returns a deep, independent copy of a cart's items, taken
// at order-placement time. Later catalog edits must not reach into placed
// orders.
func SnapshotItems(items []CartItem) []CartItem {
	snapshot := make([]CartItem, len(items))
	copy(snapshot, items)
	return snapshot
}

// ItemsTotal sums price times quantity over a set of cart items.
func ItemsTotal(items []CartItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

package domain

import "time"

// InventoryRecord holds the on-hand quantity of a product in a single
// warehouse. A record is keyed by the (ProductID, WarehouseID) pair, is
// created on the first stock addition for that pair and is never deleted;
// a quantity of zero is a legitimate state.
type InventoryRecord struct {
	ProductID   string
	WarehouseID string
	Quantity    int
	Version     int // optimistic locking
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

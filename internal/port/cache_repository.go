package port

import "context"

// StockCache mirrors stock levels for fast availability reads. The cache is
// never authoritative; the inventory repository is.
type StockCache interface {
	// SetStock overwrites the cached level for a (product, warehouse) pair.
	SetStock(ctx context.Context, productID, warehouseID string, quantity int) error

	// GetStock returns the cached level; found is false on a cache miss.
	GetStock(ctx context.Context, productID, warehouseID string) (quantity int, found bool, err error)

	// DecrementStock atomically decreases the cached level, returns false if insufficient
	DecrementStock(ctx context.Context, productID, warehouseID string, quantity int) (bool, error)

	// IncrementStock restores the cached level (for rollback on failure)
	IncrementStock(ctx context.Context, productID, warehouseID string, quantity int) error
}

package service

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/stockroom/scm/internal/core/domain"
	"github.com/stockroom/scm/internal/port"
)

// InventoryService owns the per-(product, warehouse) stock quantities and
// enforces that they never go negative. All mutations on one pair are
// serialized through a keyed mutex.
type InventoryService struct {
	inventory port.InventoryRepository
	cache     port.StockCache // optional best-effort mirror, may be nil
	locks     *keyedMutex
}

func NewInventoryService(inventory port.InventoryRepository, cache port.StockCache) *InventoryService {
	return &InventoryService{
		inventory: inventory,
		cache:     cache,
		locks:     newKeyedMutex(),
	}
}

func pairKey(productID, warehouseID string) string {
	return productID + ":" + warehouseID
}

func validateIdentifier(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s cannot be blank", ErrInvalidArgument, name)
	}
	return nil
}

func validatePair(productID, warehouseID string) error {
	if err := validateIdentifier("product id", productID); err != nil {
		return err
	}
	return validateIdentifier("warehouse id", warehouseID)
}

// AddStock increases the quantity for the pair, creating the record on the
// first addition. Adding to a never-stocked pair is not an error.
func (s *InventoryService) AddStock(ctx context.Context, productID, warehouseID string, amount int) error {
	if err := validatePair(productID, warehouseID); err != nil {
		return err
	}
	if amount <= 0 {
		return fmt.Errorf("%w: amount to add must be positive, got %d", ErrInvalidQuantity, amount)
	}

	unlock := s.locks.lock(pairKey(productID, warehouseID))
	defer unlock()

	return s.addLocked(ctx, productID, warehouseID, amount)
}

// RemoveStock decreases the quantity for the pair. The record must already
// exist; a never-stocked pair is a not-found error, not an insufficient-stock
// error.
func (s *InventoryService) RemoveStock(ctx context.Context, productID, warehouseID string, amount int) error {
	if err := validatePair(productID, warehouseID); err != nil {
		return err
	}
	if amount <= 0 {
		return fmt.Errorf("%w: amount to remove must be positive, got %d", ErrInvalidQuantity, amount)
	}

	unlock := s.locks.lock(pairKey(productID, warehouseID))
	defer unlock()

	return s.removeLocked(ctx, productID, warehouseID, amount)
}

// GetStockLevel returns the stored quantity, or 0 when the pair has never
// been stocked.
func (s *InventoryService) GetStockLevel(ctx context.Context, productID, warehouseID string) (int, error) {
	if err := validatePair(productID, warehouseID); err != nil {
		return 0, err
	}

	record, err := s.inventory.FindByProductAndWarehouse(ctx, productID, warehouseID)
	if err != nil {
		return 0, fmt.Errorf("find inventory: %w", err)
	}
	if record == nil {
		return 0, nil
	}
	return record.Quantity, nil
}

// TransferStock moves stock between two warehouses as remove-then-add. Both
// pair locks are held for the whole operation, acquired in sorted key order
// so crossing transfers cannot deadlock, and the addition only runs after a
// successful removal. No partially transferred state is observable.
func (s *InventoryService) TransferStock(ctx context.Context, productID, fromWarehouseID, toWarehouseID string, amount int) error {
	if err := validateIdentifier("product id", productID); err != nil {
		return err
	}
	if err := validateIdentifier("source warehouse id", fromWarehouseID); err != nil {
		return err
	}
	if err := validateIdentifier("destination warehouse id", toWarehouseID); err != nil {
		return err
	}
	if fromWarehouseID == toWarehouseID {
		return fmt.Errorf("%w: source and destination warehouses must differ, got %q", ErrInvalidArgument, fromWarehouseID)
	}
	if amount <= 0 {
		return fmt.Errorf("%w: amount to transfer must be positive, got %d", ErrInvalidQuantity, amount)
	}

	keys := []string{pairKey(productID, fromWarehouseID), pairKey(productID, toWarehouseID)}
	sort.Strings(keys)
	for _, key := range keys {
		unlock := s.locks.lock(key)
		defer unlock()
	}

	if err := s.removeLocked(ctx, productID, fromWarehouseID, amount); err != nil {
		return err
	}
	return s.addLocked(ctx, productID, toWarehouseID, amount)
}

func (s *InventoryService) addLocked(ctx context.Context, productID, warehouseID string, amount int) error {
	record, err := s.inventory.FindByProductAndWarehouse(ctx, productID, warehouseID)
	if err != nil {
		return fmt.Errorf("find inventory: %w", err)
	}

	now := time.Now()
	if record == nil {
		record = &domain.InventoryRecord{
			ProductID:   productID,
			WarehouseID: warehouseID,
			CreatedAt:   now,
		}
	}
	record.Quantity += amount
	record.UpdatedAt = now

	if err := s.inventory.SaveInventoryRecord(ctx, *record); err != nil {
		return fmt.Errorf("save inventory: %w", err)
	}
	s.mirror(ctx, productID, warehouseID, record.Quantity)
	return nil
}

func (s *InventoryService) removeLocked(ctx context.Context, productID, warehouseID string, amount int) error {
	record, err := s.inventory.FindByProductAndWarehouse(ctx, productID, warehouseID)
	if err != nil {
		return fmt.Errorf("find inventory: %w", err)
	}
	if record == nil {
		return fmt.Errorf("%w: no inventory for product %q in warehouse %q", ErrNotFound, productID, warehouseID)
	}
	if record.Quantity < amount {
		return fmt.Errorf("%w: product %q in warehouse %q has %d available, %d requested",
			ErrInsufficientStock, productID, warehouseID, record.Quantity, amount)
	}

	record.Quantity -= amount
	record.UpdatedAt = time.Now()

	if err := s.inventory.SaveInventoryRecord(ctx, *record); err != nil {
		return fmt.Errorf("save inventory: %w", err)
	}
	s.mirror(ctx, productID, warehouseID, record.Quantity)
	return nil
}

// mirror pushes the new level into the stock cache after a successful
// mutation. Cache failures are logged and ignored.
func (s *InventoryService) mirror(ctx context.Context, productID, warehouseID string, quantity int) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetStock(ctx, productID, warehouseID, quantity); err != nil {
		log.Printf("stock cache update failed for %s/%s: %v", productID, warehouseID, err)
	}
}

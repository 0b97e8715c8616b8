package service

import (
	"context"
	"fmt"
	"time"

	"github.com/stockroom/scm/internal/core/domain"
	"github.com/stockroom/scm/internal/port"
)

const (
	salesOrderPrefix    = "SO"
	purchaseOrderPrefix = "PO"
	shipmentPrefix      = "SHP"
)

// OrderService orchestrates the sales-order and purchase-order lifecycles on
// top of the inventory ledger and the catalog stores.
type OrderService struct {
	inventory      *InventoryService
	salesOrders    port.SalesOrderRepository
	purchaseOrders port.PurchaseOrderRepository
	shipments      port.ShipmentRepository
	products       port.ProductRepository
	suppliers      port.SupplierRepository
	newID          IDGenerator
	orderLocks     *keyedMutex
}

func NewOrderService(
	inventory *InventoryService,
	salesOrders port.SalesOrderRepository,
	purchaseOrders port.PurchaseOrderRepository,
	shipments port.ShipmentRepository,
	products port.ProductRepository,
	suppliers port.SupplierRepository,
	newID IDGenerator,
) *OrderService {
	if newID == nil {
		newID = RandomID
	}
	return &OrderService{
		inventory:      inventory,
		salesOrders:    salesOrders,
		purchaseOrders: purchaseOrders,
		shipments:      shipments,
		products:       products,
		suppliers:      suppliers,
		newID:          newID,
		orderLocks:     newKeyedMutex(),
	}
}

// CreateSalesOrder checks availability in the given warehouse and persists a
// new order in state CREATED. Nothing is persisted when the check fails.
// The check and the create are not atomic with respect to concurrent
// inventory mutation on the same pair; fulfillment re-checks stock.
func (s *OrderService) CreateSalesOrder(ctx context.Context, productID string, quantity int, customerInfo, warehouseID string) (*domain.SalesOrder, error) {
	if err := validateIdentifier("product id", productID); err != nil {
		return nil, err
	}
	if err := validateIdentifier("customer info", customerInfo); err != nil {
		return nil, err
	}
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: order quantity must be positive, got %d", ErrInvalidArgument, quantity)
	}

	available, err := s.inventory.GetStockLevel(ctx, productID, warehouseID)
	if err != nil {
		return nil, err
	}
	if available < quantity {
		return nil, fmt.Errorf("%w: product %q in warehouse %q has %d available, %d requested",
			ErrInsufficientStock, productID, warehouseID, available, quantity)
	}

	now := time.Now()
	order := domain.SalesOrder{
		ID:           s.newID(salesOrderPrefix),
		ProductID:    productID,
		Quantity:     quantity,
		CustomerInfo: customerInfo,
		Status:       domain.SalesOrderStatusCreated,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.salesOrders.SaveSalesOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("save sales order: %w", err)
	}
	return &order, nil
}

// GetSalesOrder looks up a sales order by ID.
func (s *OrderService) GetSalesOrder(ctx context.Context, orderID string) (*domain.SalesOrder, error) {
	if err := validateIdentifier("order id", orderID); err != nil {
		return nil, err
	}
	order, err := s.salesOrders.FindSalesOrderByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("find sales order: %w", err)
	}
	if order == nil {
		return nil, fmt.Errorf("%w: sales order %q", ErrNotFound, orderID)
	}
	return order, nil
}

// FulfillSalesOrder deducts the order quantity from the given warehouse,
// flips the order to FULFILLED and records a shipment. Inventory errors
// propagate unchanged and leave the order in CREATED. The per-order lock
// guarantees the flip happens at most once under concurrent attempts.
func (s *OrderService) FulfillSalesOrder(ctx context.Context, orderID, warehouseID, destination string) (*domain.Shipment, error) {
	if err := validateIdentifier("order id", orderID); err != nil {
		return nil, err
	}
	if err := validateIdentifier("warehouse id", warehouseID); err != nil {
		return nil, err
	}
	if err := validateIdentifier("destination", destination); err != nil {
		return nil, err
	}

	unlock := s.orderLocks.lock(orderID)
	defer unlock()

	order, err := s.salesOrders.FindSalesOrderByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("find sales order: %w", err)
	}
	if order == nil {
		return nil, fmt.Errorf("%w: sales order %q", ErrNotFound, orderID)
	}
	if order.Status == domain.SalesOrderStatusFulfilled {
		return nil, fmt.Errorf("%w: sales order %q has already been fulfilled", ErrInvalidState, orderID)
	}

	if err := s.inventory.RemoveStock(ctx, order.ProductID, warehouseID, order.Quantity); err != nil {
		return nil, err
	}

	order.Status = domain.SalesOrderStatusFulfilled
	order.UpdatedAt = time.Now()
	if err := s.salesOrders.SaveSalesOrder(ctx, *order); err != nil {
		// Stock is already deducted here; compensation is the caller's
		// responsibility.
		return nil, fmt.Errorf("save sales order: %w", err)
	}

	shipment := domain.Shipment{
		ID:           s.newID(shipmentPrefix),
		SalesOrderID: order.ID,
		WarehouseID:  warehouseID,
		Destination:  destination,
		CreatedAt:    time.Now(),
	}
	if err := s.shipments.SaveShipment(ctx, shipment); err != nil {
		return nil, fmt.Errorf("save shipment: %w", err)
	}
	return &shipment, nil
}

// CreatePurchaseOrder validates both catalog references, product before
// supplier, and persists an immutable purchase order.
func (s *OrderService) CreatePurchaseOrder(ctx context.Context, productID string, quantity int, supplierID string) (*domain.PurchaseOrder, error) {
	if err := validateIdentifier("product id", productID); err != nil {
		return nil, err
	}
	if err := validateIdentifier("supplier id", supplierID); err != nil {
		return nil, err
	}
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: purchase quantity must be positive, got %d", ErrInvalidArgument, quantity)
	}

	product, err := s.products.FindProductByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("find product: %w", err)
	}
	if product == nil {
		return nil, fmt.Errorf("%w: product %q", ErrNotFound, productID)
	}

	supplier, err := s.suppliers.FindSupplierByID(ctx, supplierID)
	if err != nil {
		return nil, fmt.Errorf("find supplier: %w", err)
	}
	if supplier == nil {
		return nil, fmt.Errorf("%w: supplier %q", ErrNotFound, supplierID)
	}

	order := domain.PurchaseOrder{
		ID:         s.newID(purchaseOrderPrefix),
		SupplierID: supplierID,
		ProductID:  productID,
		Quantity:   quantity,
		CreatedAt:  time.Now(),
	}
	if err := s.purchaseOrders.SavePurchaseOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("save purchase order: %w", err)
	}
	return &order, nil
}

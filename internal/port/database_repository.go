package port

import (
	"context"

	"github.com/stockroom/scm/internal/core/domain"
)

// InventoryRepository is the composite-key store for inventory records.
type InventoryRepository interface {
	// FindByProductAndWarehouse returns nil when no record exists for the pair.
	FindByProductAndWarehouse(ctx context.Context, productID, warehouseID string) (*domain.InventoryRecord, error)

	// SaveInventoryRecord upserts the record keyed by its (ProductID, WarehouseID) pair.
	SaveInventoryRecord(ctx context.Context, record domain.InventoryRecord) error
}

// SalesOrderRepository stores sales orders keyed by order ID.
type SalesOrderRepository interface {
	// FindSalesOrderByID returns nil when the order does not exist.
	FindSalesOrderByID(ctx context.Context, id string) (*domain.SalesOrder, error)

	// SaveSalesOrder upserts the order by its ID.
	SaveSalesOrder(ctx context.Context, order domain.SalesOrder) error

	ListSalesOrders(ctx context.Context) ([]domain.SalesOrder, error)

	// DeleteSalesOrder is an idempotent no-op when the order is absent.
	DeleteSalesOrder(ctx context.Context, id string) error
}

// PurchaseOrderRepository stores purchase orders keyed by order ID.
type PurchaseOrderRepository interface {
	FindPurchaseOrderByID(ctx context.Context, id string) (*domain.PurchaseOrder, error)
	SavePurchaseOrder(ctx context.Context, order domain.PurchaseOrder) error
	ListPurchaseOrders(ctx context.Context) ([]domain.PurchaseOrder, error)
	DeletePurchaseOrder(ctx context.Context, id string) error
}

// ShipmentRepository stores shipments keyed by shipment ID.
type ShipmentRepository interface {
	FindShipmentByID(ctx context.Context, id string) (*domain.Shipment, error)
	SaveShipment(ctx context.Context, shipment domain.Shipment) error
	ListShipments(ctx context.Context) ([]domain.Shipment, error)
	DeleteShipment(ctx context.Context, id string) error
}

// ProductRepository is the product catalog used for existence checks and seeding.
type ProductRepository interface {
	FindProductByID(ctx context.Context, id string) (*domain.Product, error)
	SaveProduct(ctx context.Context, product domain.Product) error
	ListProducts(ctx context.Context) ([]domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

// SupplierRepository is the supplier catalog used for existence checks and seeding.
type SupplierRepository interface {
	FindSupplierByID(ctx context.Context, id string) (*domain.Supplier, error)
	SaveSupplier(ctx context.Context, supplier domain.Supplier) error
	ListSuppliers(ctx context.Context) ([]domain.Supplier, error)
	DeleteSupplier(ctx context.Context, id string) error
}

// WarehouseRepository stores warehouse metadata.
type WarehouseRepository interface {
	FindWarehouseByID(ctx context.Context, id string) (*domain.Warehouse, error)
	SaveWarehouse(ctx context.Context, warehouse domain.Warehouse) error
	ListWarehouses(ctx context.Context) ([]domain.Warehouse, error)
	DeleteWarehouse(ctx context.Context, id string) error
}

// Store bundles every repository port. Both storage backends satisfy it, so
// wiring code can pick a backend with a single assignment.
type Store interface {
	InventoryRepository
	SalesOrderRepository
	PurchaseOrderRepository
	ShipmentRepository
	ProductRepository
	SupplierRepository
	WarehouseRepository
}

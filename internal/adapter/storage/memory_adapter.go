package storage

import (
	"context"
	"sync"

	"github.com/stockroom/scm/internal/core/domain"
)

// MemoryAdapter implements every repository port with mutex-guarded maps.
// It is the reference backend for tests and single-process deployments.
type MemoryAdapter struct {
	mu             sync.RWMutex
	inventory      map[string]domain.InventoryRecord
	salesOrders    map[string]domain.SalesOrder
	purchaseOrders map[string]domain.PurchaseOrder
	shipments      map[string]domain.Shipment
	products       map[string]domain.Product
	suppliers      map[string]domain.Supplier
	warehouses     map[string]domain.Warehouse
}

func NewMemoryAdapter() *MemoryAdapter {
	return &MemoryAdapter{
		inventory:      make(map[string]domain.InventoryRecord),
		salesOrders:    make(map[string]domain.SalesOrder),
		purchaseOrders: make(map[string]domain.PurchaseOrder),
		shipments:      make(map[string]domain.Shipment),
		products:       make(map[string]domain.Product),
		suppliers:      make(map[string]domain.Supplier),
		warehouses:     make(map[string]domain.Warehouse),
	}
}

func inventoryKey(productID, warehouseID string) string {
	return productID + ":" + warehouseID
}

func (m *MemoryAdapter) FindByProductAndWarehouse(ctx context.Context, productID, warehouseID string) (*domain.InventoryRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.inventory[inventoryKey(productID, warehouseID)]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

func (m *MemoryAdapter) SaveInventoryRecord(ctx context.Context, record domain.InventoryRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	record.Version++
	m.inventory[inventoryKey(record.ProductID, record.WarehouseID)] = record
	return nil
}

func (m *MemoryAdapter) FindSalesOrderByID(ctx context.Context, id string) (*domain.SalesOrder, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	order, ok := m.salesOrders[id]
	if !ok {
		return nil, nil
	}
	return &order, nil
}

func (m *MemoryAdapter) SaveSalesOrder(ctx context.Context, order domain.SalesOrder) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.salesOrders[order.ID] = order
	return nil
}

func (m *MemoryAdapter) ListSalesOrders(ctx context.Context) ([]domain.SalesOrder, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]domain.SalesOrder, 0, len(m.salesOrders))
	for _, order := range m.salesOrders {
		out = append(out, order)
	}
	return out, nil
}

func (m *MemoryAdapter) DeleteSalesOrder(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.salesOrders, id)
	return nil
}

func (m *MemoryAdapter) FindPurchaseOrderByID(ctx context.Context, id string) (*domain.PurchaseOrder, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	order, ok := m.purchaseOrders[id]
	if !ok {
		return nil, nil
	}
	return &order, nil
}

func (m *MemoryAdapter) SavePurchaseOrder(ctx context.Context, order domain.PurchaseOrder) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.purchaseOrders[order.ID] = order
	return nil
}

func (m *MemoryAdapter) ListPurchaseOrders(ctx context.Context) ([]domain.PurchaseOrder, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]domain.PurchaseOrder, 0, len(m.purchaseOrders))
	for _, order := range m.purchaseOrders {
		out = append(out, order)
	}
	return out, nil
}

func (m *MemoryAdapter) DeletePurchaseOrder(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.purchaseOrders, id)
	return nil
}

func (m *MemoryAdapter) FindShipmentByID(ctx context.Context, id string) (*domain.Shipment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	shipment, ok := m.shipments[id]
	if !ok {
		return nil, nil
	}
	return &shipment, nil
}

func (m *MemoryAdapter) SaveShipment(ctx context.Context, shipment domain.Shipment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shipments[shipment.ID] = shipment
	return nil
}

func (m *MemoryAdapter) ListShipments(ctx context.Context) ([]domain.Shipment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]domain.Shipment, 0, len(m.shipments))
	for _, shipment := range m.shipments {
		out = append(out, shipment)
	}
	return out, nil
}

func (m *MemoryAdapter) DeleteShipment(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.shipments, id)
	return nil
}

func (m *MemoryAdapter) FindProductByID(ctx context.Context, id string) (*domain.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	product, ok := m.products[id]
	if !ok {
		return nil, nil
	}
	return &product, nil
}

func (m *MemoryAdapter) SaveProduct(ctx context.Context, product domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products[product.ID] = product
	return nil
}

func (m *MemoryAdapter) ListProducts(ctx context.Context) ([]domain.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]domain.Product, 0, len(m.products))
	for _, product := range m.products {
		out = append(out, product)
	}
	return out, nil
}

func (m *MemoryAdapter) DeleteProduct(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.products, id)
	return nil
}

func (m *MemoryAdapter) FindSupplierByID(ctx context.Context, id string) (*domain.Supplier, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	supplier, ok := m.suppliers[id]
	if !ok {
		return nil, nil
	}
	return &supplier, nil
}

func (m *MemoryAdapter) SaveSupplier(ctx context.Context, supplier domain.Supplier) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.suppliers[supplier.ID] = supplier
	return nil
}

func (m *MemoryAdapter) ListSuppliers(ctx context.Context) ([]domain.Supplier, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]domain.Supplier, 0, len(m.suppliers))
	for _, supplier := range m.suppliers {
		out = append(out, supplier)
	}
	return out, nil
}

func (m *MemoryAdapter) DeleteSupplier(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.suppliers, id)
	return nil
}

func (m *MemoryAdapter) FindWarehouseByID(ctx context.Context, id string) (*domain.Warehouse, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	warehouse, ok := m.warehouses[id]
	if !ok {
		return nil, nil
	}
	return &warehouse, nil
}

func (m *MemoryAdapter) SaveWarehouse(ctx context.Context, warehouse domain.Warehouse) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.warehouses[warehouse.ID] = warehouse
	return nil
}

func (m *MemoryAdapter) ListWarehouses(ctx context.Context) ([]domain.Warehouse, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]domain.Warehouse, 0, len(m.warehouses))
	for _, warehouse := range m.warehouses {
		out = append(out, warehouse)
	}
	return out, nil
}

func (m *MemoryAdapter) DeleteWarehouse(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.warehouses, id)
	return nil
}

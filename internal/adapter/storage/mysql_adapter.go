package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/stockroom/scm/internal/core/domain"
)

var ErrOptimisticLock = errors.New("optimistic lock conflict")

// MySQLAdapter is the durable implementation of the repository ports.
// Inventory upserts carry a version check so that concurrent writers from
// other processes cannot silently overwrite each other.
type MySQLAdapter struct {
	db *sql.DB
}

func NewMySQLAdapter(db *sql.DB) *MySQLAdapter {
	return &MySQLAdapter{db: db}
}

func (m *MySQLAdapter) FindByProductAndWarehouse(ctx context.Context, productID, warehouseID string) (*domain.InventoryRecord, error) {
	var record domain.InventoryRecord
	err := m.db.QueryRowContext(ctx, `
		SELECT product_id, warehouse_id, quantity, version, created_at, updated_at
		FROM inventory_records WHERE product_id = ? AND warehouse_id = ?`,
		productID, warehouseID,
	).Scan(&record.ProductID, &record.WarehouseID, &record.Quantity, &record.Version,
		&record.CreatedAt, &record.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query inventory: %w", err)
	}
	return &record, nil
}

func (m *MySQLAdapter) SaveInventoryRecord(ctx context.Context, record domain.InventoryRecord) error {
	if record.Version == 0 {
		_, err := m.db.ExecContext(ctx, `
			INSERT INTO inventory_records (product_id, warehouse_id, quantity, version, created_at, updated_at)
			VALUES (?, ?, ?, 1, ?, ?)`,
			record.ProductID, record.WarehouseID, record.Quantity,
			record.CreatedAt, record.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert inventory: %w", err)
		}
		return nil
	}

	result, err := m.db.ExecContext(ctx, `
		UPDATE inventory_records
		SET quantity = ?, version = version + 1, updated_at = ?
		WHERE product_id = ? AND warehouse_id = ? AND version = ?`,
		record.Quantity, record.UpdatedAt,
		record.ProductID, record.WarehouseID, record.Version,
	)
	if err != nil {
		return fmt.Errorf("update inventory: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrOptimisticLock
	}
	return nil
}

func (m *MySQLAdapter) FindSalesOrderByID(ctx context.Context, id string) (*domain.SalesOrder, error) {
	var order domain.SalesOrder
	err := m.db.QueryRowContext(ctx, `
		SELECT id, product_id, quantity, customer_info, status, created_at, updated_at
		FROM sales_orders WHERE id = ?`, id,
	).Scan(&order.ID, &order.ProductID, &order.Quantity, &order.CustomerInfo,
		&order.Status, &order.CreatedAt, &order.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query sales order: %w", err)
	}
	return &order, nil
}

func (m *MySQLAdapter) SaveSalesOrder(ctx context.Context, order domain.SalesOrder) error {
	_, err := m.db.ExecContext(ctx, `
		INSERT INTO sales_orders (id, product_id, quantity, customer_info, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE status = VALUES(status), updated_at = VALUES(updated_at)`,
		order.ID, order.ProductID, order.Quantity, order.CustomerInfo,
		order.Status, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save sales order: %w", err)
	}
	return nil
}

func (m *MySQLAdapter) ListSalesOrders(ctx context.Context) ([]domain.SalesOrder, error) {
	rows, err := m.db.QueryContext(ctx, `
		SELECT id, product_id, quantity, customer_info, status, created_at, updated_at
		FROM sales_orders ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("query sales orders: %w", err)
	}
	defer rows.Close()

	var out []domain.SalesOrder
	for rows.Next() {
		var order domain.SalesOrder
		if err := rows.Scan(&order.ID, &order.ProductID, &order.Quantity, &order.CustomerInfo,
			&order.Status, &order.CreatedAt, &order.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan sales order: %w", err)
		}
		out = append(out, order)
	}
	return out, rows.Err()
}

func (m *MySQLAdapter) DeleteSalesOrder(ctx context.Context, id string) error {
	_, err := m.db.ExecContext(ctx, `DELETE FROM sales_orders WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete sales order: %w", err)
	}
	return nil
}

func (m *MySQLAdapter) FindPurchaseOrderByID(ctx context.Context, id string) (*domain.PurchaseOrder, error) {
	var order domain.PurchaseOrder
	err := m.db.QueryRowContext(ctx, `
		SELECT id, supplier_id, product_id, quantity, created_at
		FROM purchase_orders WHERE id = ?`, id,
	).Scan(&order.ID, &order.SupplierID, &order.ProductID, &order.Quantity, &order.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query purchase order: %w", err)
	}
	return &order, nil
}

func (m *MySQLAdapter) SavePurchaseOrder(ctx context.Context, order domain.PurchaseOrder) error {
	_, err := m.db.ExecContext(ctx, `
		INSERT INTO purchase_orders (id, supplier_id, product_id, quantity, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE quantity = VALUES(quantity)`,
		order.ID, order.SupplierID, order.ProductID, order.Quantity, order.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("save purchase order: %w", err)
	}
	return nil
}

func (m *MySQLAdapter) ListPurchaseOrders(ctx context.Context) ([]domain.PurchaseOrder, error) {
	rows, err := m.db.QueryContext(ctx, `
		SELECT id, supplier_id, product_id, quantity, created_at
		FROM purchase_orders ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("query purchase orders: %w", err)
	}
	defer rows.Close()

	var out []domain.PurchaseOrder
	for rows.Next() {
		var order domain.PurchaseOrder
		if err := rows.Scan(&order.ID, &order.SupplierID, &order.ProductID,
			&order.Quantity, &order.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan purchase order: %w", err)
		}
		out = append(out, order)
	}
	return out, rows.Err()
}

func (m *MySQLAdapter) DeletePurchaseOrder(ctx context.Context, id string) error {
	_, err := m.db.ExecContext(ctx, `DELETE FROM purchase_orders WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete purchase order: %w", err)
	}
	return nil
}

func (m *MySQLAdapter) FindShipmentByID(ctx context.Context, id string) (*domain.Shipment, error) {
	var shipment domain.Shipment
	err := m.db.QueryRowContext(ctx, `
		SELECT id, sales_order_id, warehouse_id, destination, created_at
		FROM shipments WHERE id = ?`, id,
	).Scan(&shipment.ID, &shipment.SalesOrderID, &shipment.WarehouseID,
		&shipment.Destination, &shipment.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query shipment: %w", err)
	}
	return &shipment, nil
}

func (m *MySQLAdapter) SaveShipment(ctx context.Context, shipment domain.Shipment) error {
	_, err := m.db.ExecContext(ctx, `
		INSERT INTO shipments (id, sales_order_id, warehouse_id, destination, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE destination = VALUES(destination)`,
		shipment.ID, shipment.SalesOrderID, shipment.WarehouseID,
		shipment.Destination, shipment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("save shipment: %w", err)
	}
	return nil
}

func (m *MySQLAdapter) ListShipments(ctx context.Context) ([]domain.Shipment, error) {
	rows, err := m.db.QueryContext(ctx, `
		SELECT id, sales_order_id, warehouse_id, destination, created_at
		FROM shipments ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("query shipments: %w", err)
	}
	defer rows.Close()

	var out []domain.Shipment
	for rows.Next() {
		var shipment domain.Shipment
		if err := rows.Scan(&shipment.ID, &shipment.SalesOrderID, &shipment.WarehouseID,
			&shipment.Destination, &shipment.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan shipment: %w", err)
		}
		out = append(out, shipment)
	}
	return out, rows.Err()
}

func (m *MySQLAdapter) DeleteShipment(ctx context.Context, id string) error {
	_, err := m.db.ExecContext(ctx, `DELETE FROM shipments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete shipment: %w", err)
	}
	return nil
}

func (m *MySQLAdapter) FindProductByID(ctx context.Context, id string) (*domain.Product, error) {
	var product domain.Product
	err := m.db.QueryRowContext(ctx, `
		SELECT id, sku, name, created_at FROM products WHERE id = ?`, id,
	).Scan(&product.ID, &product.SKU, &product.Name, &product.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query product: %w", err)
	}
	return &product, nil
}

func (m *MySQLAdapter) SaveProduct(ctx context.Context, product domain.Product) error {
	_, err := m.db.ExecContext(ctx, `
		INSERT INTO products (id, sku, name, created_at)
		VALUES (?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE sku = VALUES(sku), name = VALUES(name)`,
		product.ID, product.SKU, product.Name, product.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("save product: %w", err)
	}
	return nil
}

func (m *MySQLAdapter) ListProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := m.db.QueryContext(ctx, `
		SELECT id, sku, name, created_at FROM products ORDER BY sku`)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var out []domain.Product
	for rows.Next() {
		var product domain.Product
		if err := rows.Scan(&product.ID, &product.SKU, &product.Name, &product.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, product)
	}
	return out, rows.Err()
}

func (m *MySQLAdapter) DeleteProduct(ctx context.Context, id string) error {
	_, err := m.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

func (m *MySQLAdapter) FindSupplierByID(ctx context.Context, id string) (*domain.Supplier, error) {
	var supplier domain.Supplier
	err := m.db.QueryRowContext(ctx, `
		SELECT id, name, contact, created_at FROM suppliers WHERE id = ?`, id,
	).Scan(&supplier.ID, &supplier.Name, &supplier.Contact, &supplier.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query supplier: %w", err)
	}
	return &supplier, nil
}

func (m *MySQLAdapter) SaveSupplier(ctx context.Context, supplier domain.Supplier) error {
	_, err := m.db.ExecContext(ctx, `
		INSERT INTO suppliers (id, name, contact, created_at)
		VALUES (?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE name = VALUES(name), contact = VALUES(contact)`,
		supplier.ID, supplier.Name, supplier.Contact, supplier.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("save supplier: %w", err)
	}
	return nil
}

func (m *MySQLAdapter) ListSuppliers(ctx context.Context) ([]domain.Supplier, error) {
	rows, err := m.db.QueryContext(ctx, `
		SELECT id, name, contact, created_at FROM suppliers ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query suppliers: %w", err)
	}
	defer rows.Close()

	var out []domain.Supplier
	for rows.Next() {
		var supplier domain.Supplier
		if err := rows.Scan(&supplier.ID, &supplier.Name, &supplier.Contact, &supplier.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		out = append(out, supplier)
	}
	return out, rows.Err()
}

func (m *MySQLAdapter) DeleteSupplier(ctx context.Context, id string) error {
	_, err := m.db.ExecContext(ctx, `DELETE FROM suppliers WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete supplier: %w", err)
	}
	return nil
}

func (m *MySQLAdapter) FindWarehouseByID(ctx context.Context, id string) (*domain.Warehouse, error) {
	var warehouse domain.Warehouse
	err := m.db.QueryRowContext(ctx, `
		SELECT id, name, location, created_at FROM warehouses WHERE id = ?`, id,
	).Scan(&warehouse.ID, &warehouse.Name, &warehouse.Location, &warehouse.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query warehouse: %w", err)
	}
	return &warehouse, nil
}

func (m *MySQLAdapter) SaveWarehouse(ctx context.Context, warehouse domain.Warehouse) error {
	_, err := m.db.ExecContext(ctx, `
		INSERT INTO warehouses (id, name, location, created_at)
		VALUES (?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE name = VALUES(name), location = VALUES(location)`,
		warehouse.ID, warehouse.Name, warehouse.Location, warehouse.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("save warehouse: %w", err)
	}
	return nil
}

func (m *MySQLAdapter) ListWarehouses(ctx context.Context) ([]domain.Warehouse, error) {
	rows, err := m.db.QueryContext(ctx, `
		SELECT id, name, location, created_at FROM warehouses ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query warehouses: %w", err)
	}
	defer rows.Close()

	var out []domain.Warehouse
	for rows.Next() {
		var warehouse domain.Warehouse
		if err := rows.Scan(&warehouse.ID, &warehouse.Name, &warehouse.Location, &warehouse.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan warehouse: %w", err)
		}
		out = append(out, warehouse)
	}
	return out, rows.Err()
}

func (m *MySQLAdapter) DeleteWarehouse(ctx context.Context, id string) error {
	_, err := m.db.ExecContext(ctx, `DELETE FROM warehouses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete warehouse: %w", err)
	}
	return nil
}

package domain

import "time"

type SalesOrderStatus string

const (
	SalesOrderStatusCreated   SalesOrderStatus = "CREATED"
	SalesOrderStatusFulfilled SalesOrderStatus = "FULFILLED"
)

// SalesOrder moves through exactly one transition, CREATED to FULFILLED.
// Quantity is fixed at creation.
type SalesOrder struct {
	ID           string
	ProductID    string
	Quantity     int
	CustomerInfo string
	Status       SalesOrderStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PurchaseOrder is immutable once created; no fulfillment is modeled for it.
type PurchaseOrder struct {
	ID         string
	SupplierID string
	ProductID  string
	Quantity   int
	CreatedAt  time.Time
}

// Shipment records a single successful fulfillment of a sales order.
type Shipment struct {
	ID           string
	SalesOrderID string
	WarehouseID  string
	Destination  string
	CreatedAt    time.Time
}

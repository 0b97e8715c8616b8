package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/stockroom/scm/internal/core/domain"
	"github.com/stockroom/scm/internal/core/service"
	"github.com/stockroom/scm/internal/port"
)

type HTTPHandler struct {
	inventory  *service.InventoryService
	orders     *service.OrderService
	products   port.ProductRepository
	suppliers  port.SupplierRepository
	warehouses port.WarehouseRepository
	cache      port.StockCache // optional fast path for stock reads, may be nil
}

func NewHTTPHandler(
	inventory *service.InventoryService,
	orders *service.OrderService,
	products port.ProductRepository,
	suppliers port.SupplierRepository,
	warehouses port.WarehouseRepository,
	cache port.StockCache,
) *HTTPHandler {
	return &HTTPHandler{
		inventory:  inventory,
		orders:     orders,
		products:   products,
		suppliers:  suppliers,
		warehouses: warehouses,
		cache:      cache,
	}
}

type stockRequest struct {
	ProductID   string `json:"product_id"`
	WarehouseID string `json:"warehouse_id"`
	Amount      int    `json:"amount"`
}

type transferRequest struct {
	ProductID       string `json:"product_id"`
	FromWarehouseID string `json:"from_warehouse_id"`
	ToWarehouseID   string `json:"to_warehouse_id"`
	Amount          int    `json:"amount"`
}

type createSalesOrderRequest struct {
	ProductID    string `json:"product_id"`
	Quantity     int    `json:"quantity"`
	CustomerInfo string `json:"customer_info"`
	WarehouseID  string `json:"warehouse_id"`
}

type fulfillRequest struct {
	WarehouseID string `json:"warehouse_id"`
	Destination string `json:"destination"`
}

type createPurchaseOrderRequest struct {
	ProductID  string `json:"product_id"`
	Quantity   int    `json:"quantity"`
	SupplierID string `json:"supplier_id"`
}

type stockLevelResponse struct {
	ProductID   string `json:"product_id"`
	WarehouseID string `json:"warehouse_id"`
	Quantity    int    `json:"quantity"`
	Cached      bool   `json:"cached"`
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError maps the service error kinds onto HTTP status codes. Anything
// unrecognized is a 500 with a generic message.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "internal error"

	switch {
	case errors.Is(err, service.ErrInvalidArgument), errors.Is(err, service.ErrInvalidQuantity):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, service.ErrInsufficientStock), errors.Is(err, service.ErrInvalidState):
		status = http.StatusConflict
		message = err.Error()
	}

	writeJSON(w, status, map[string]string{"error": message})
}

func decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return false
	}
	return true
}

func (h *HTTPHandler) addStock(w http.ResponseWriter, r *http.Request) {
	var req stockRequest
	if !decode(w, r, &req) {
		return
	}
	if err := h.inventory.AddStock(r.Context(), req.ProductID, req.WarehouseID, req.Amount); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *HTTPHandler) removeStock(w http.ResponseWriter, r *http.Request) {
	var req stockRequest
	if !decode(w, r, &req) {
		return
	}
	if err := h.inventory.RemoveStock(r.Context(), req.ProductID, req.WarehouseID, req.Amount); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *HTTPHandler) transferStock(w http.ResponseWriter, r *http.Request) {
	var req transferRequest
	if !decode(w, r, &req) {
		return
	}
	err := h.inventory.TransferStock(r.Context(), req.ProductID, req.FromWarehouseID, req.ToWarehouseID, req.Amount)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *HTTPHandler) getStockLevel(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")
	warehouseID := chi.URLParam(r, "warehouseID")

	// Cache fast path; the store stays the source of truth on a miss.
	if h.cache != nil {
		if quantity, found, err := h.cache.GetStock(r.Context(), productID, warehouseID); err == nil && found {
			writeJSON(w, http.StatusOK, stockLevelResponse{
				ProductID:   productID,
				WarehouseID: warehouseID,
				Quantity:    quantity,
				Cached:      true,
			})
			return
		}
	}

	quantity, err := h.inventory.GetStockLevel(r.Context(), productID, warehouseID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stockLevelResponse{
		ProductID:   productID,
		WarehouseID: warehouseID,
		Quantity:    quantity,
	})
}

func (h *HTTPHandler) createSalesOrder(w http.ResponseWriter, r *http.Request) {
	var req createSalesOrderRequest
	if !decode(w, r, &req) {
		return
	}
	order, err := h.orders.CreateSalesOrder(r.Context(), req.ProductID, req.Quantity, req.CustomerInfo, req.WarehouseID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

func (h *HTTPHandler) fulfillSalesOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")
	var req fulfillRequest
	if !decode(w, r, &req) {
		return
	}
	shipment, err := h.orders.FulfillSalesOrder(r.Context(), orderID, req.WarehouseID, req.Destination)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, shipment)
}

func (h *HTTPHandler) getSalesOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.orders.GetSalesOrder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *HTTPHandler) createPurchaseOrder(w http.ResponseWriter, r *http.Request) {
	var req createPurchaseOrderRequest
	if !decode(w, r, &req) {
		return
	}
	order, err := h.orders.CreatePurchaseOrder(r.Context(), req.ProductID, req.Quantity, req.SupplierID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

func (h *HTTPHandler) createProduct(w http.ResponseWriter, r *http.Request) {
	var product domain.Product
	if !decode(w, r, &product) {
		return
	}
	if product.ID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing product id"})
		return
	}
	product.CreatedAt = time.Now()
	if err := h.products.SaveProduct(r.Context(), product); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, product)
}

func (h *HTTPHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.ListProducts(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *HTTPHandler) createSupplier(w http.ResponseWriter, r *http.Request) {
	var supplier domain.Supplier
	if !decode(w, r, &supplier) {
		return
	}
	if supplier.ID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing supplier id"})
		return
	}
	supplier.CreatedAt = time.Now()
	if err := h.suppliers.SaveSupplier(r.Context(), supplier); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, supplier)
}

func (h *HTTPHandler) listSuppliers(w http.ResponseWriter, r *http.Request) {
	suppliers, err := h.suppliers.ListSuppliers(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, suppliers)
}

func (h *HTTPHandler) createWarehouse(w http.ResponseWriter, r *http.Request) {
	var warehouse domain.Warehouse
	if !decode(w, r, &warehouse) {
		return
	}
	if warehouse.ID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing warehouse id"})
		return
	}
	warehouse.CreatedAt = time.Now()
	if err := h.warehouses.SaveWarehouse(r.Context(), warehouse); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, warehouse)
}

func (h *HTTPHandler) listWarehouses(w http.ResponseWriter, r *http.Request) {
	warehouses, err := h.warehouses.ListWarehouses(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, warehouses)
}

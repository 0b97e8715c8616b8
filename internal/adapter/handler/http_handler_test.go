package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stockroom/scm/internal/adapter/storage"
	"github.com/stockroom/scm/internal/core/domain"
	"github.com/stockroom/scm/internal/core/service"
)

func newTestServer(t *testing.T) (*httptest.Server, *storage.MemoryAdapter) {
	t.Helper()

	store := storage.NewMemoryAdapter()
	inventory := service.NewInventoryService(store, nil)
	orders := service.NewOrderService(inventory, store, store, store, store, store, nil)

	h := NewHTTPHandler(inventory, orders, store, store, store, nil)
	srv := httptest.NewServer(NewRouter(h))
	t.Cleanup(srv.Close)
	return srv, store
}

func postJSON(t *testing.T, url string, body interface{}) *http.Response {
	t.Helper()
	b, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(b))
	if err != nil {
		t.Fatalf("post %s: %v", url, err)
	}
	return resp
}

func TestStockEndpoints(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/stock/add", stockRequest{ProductID: "P1", WarehouseID: "W1", Amount: 30})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("add: expected 200, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp = postJSON(t, srv.URL+"/api/stock/remove", stockRequest{ProductID: "P1", WarehouseID: "W1", Amount: 10})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("remove: expected 200, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp, err := http.Get(srv.URL + "/api/stock/P1/W1")
	if err != nil {
		t.Fatalf("get stock: %v", err)
	}
	defer resp.Body.Close()

	var level stockLevelResponse
	if err := json.NewDecoder(resp.Body).Decode(&level); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if level.Quantity != 20 {
		t.Errorf("expected quantity 20, got %d", level.Quantity)
	}
	if level.Cached {
		t.Error("expected uncached read without a cache wired")
	}
}

func TestErrorStatusMapping(t *testing.T) {
	srv, _ := newTestServer(t)

	cases := []struct {
		name   string
		url    string
		body   interface{}
		status int
	}{
		{"invalid quantity", "/api/stock/add", stockRequest{ProductID: "P1", WarehouseID: "W1", Amount: 0}, http.StatusBadRequest},
		{"blank identifier", "/api/stock/add", stockRequest{ProductID: "", WarehouseID: "W1", Amount: 5}, http.StatusBadRequest},
		{"remove unknown pair", "/api/stock/remove", stockRequest{ProductID: "P9", WarehouseID: "W9", Amount: 5}, http.StatusNotFound},
		{"transfer to self", "/api/stock/transfer", transferRequest{ProductID: "P1", FromWarehouseID: "W1", ToWarehouseID: "W1", Amount: 5}, http.StatusBadRequest},
		{"order exceeding stock", "/api/orders/sales", createSalesOrderRequest{ProductID: "P1", Quantity: 99, CustomerInfo: "c", WarehouseID: "W1"}, http.StatusConflict},
		{"purchase for unknown product", "/api/orders/purchase", createPurchaseOrderRequest{ProductID: "P9", Quantity: 1, SupplierID: "S1"}, http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := postJSON(t, srv.URL+tc.url, tc.body)
			defer resp.Body.Close()
			if resp.StatusCode != tc.status {
				t.Errorf("expected %d, got %d", tc.status, resp.StatusCode)
			}
		})
	}
}

func TestSalesOrderLifecycleOverHTTP(t *testing.T) {
	srv, store := newTestServer(t)
	ctx := context.Background()

	resp := postJSON(t, srv.URL+"/api/stock/add", stockRequest{ProductID: "P1", WarehouseID: "W1", Amount: 50})
	resp.Body.Close()

	resp = postJSON(t, srv.URL+"/api/orders/sales", createSalesOrderRequest{
		ProductID: "P1", Quantity: 15, CustomerInfo: "cust", WarehouseID: "W1",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create order: expected 201, got %d", resp.StatusCode)
	}
	var order domain.SalesOrder
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		t.Fatalf("decode order: %v", err)
	}
	resp.Body.Close()

	resp = postJSON(t, srv.URL+"/api/orders/sales/"+order.ID+"/fulfill", fulfillRequest{
		WarehouseID: "W1", Destination: "12 Harbor Rd",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("fulfill: expected 200, got %d", resp.StatusCode)
	}
	var shipment domain.Shipment
	if err := json.NewDecoder(resp.Body).Decode(&shipment); err != nil {
		t.Fatalf("decode shipment: %v", err)
	}
	resp.Body.Close()
	if shipment.SalesOrderID != order.ID {
		t.Errorf("shipment references %s, want %s", shipment.SalesOrderID, order.ID)
	}

	// Second fulfillment conflicts
	resp = postJSON(t, srv.URL+"/api/orders/sales/"+order.ID+"/fulfill", fulfillRequest{
		WarehouseID: "W1", Destination: "12 Harbor Rd",
	})
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("second fulfill: expected 409, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	shipments, _ := store.ListShipments(ctx)
	if len(shipments) != 1 {
		t.Errorf("expected 1 shipment, got %d", len(shipments))
	}
}

func TestCatalogEndpoints(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/products", domain.Product{ID: "P1", SKU: "SKU-1", Name: "Widget"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create product: expected 201, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp = postJSON(t, srv.URL+"/api/suppliers", domain.Supplier{ID: "S1", Name: "Acme Supply"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create supplier: expected 201, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// With both catalog entries present the purchase order goes through
	resp = postJSON(t, srv.URL+"/api/orders/purchase", createPurchaseOrderRequest{
		ProductID: "P1", Quantity: 40, SupplierID: "S1",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create purchase order: expected 201, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp, err := http.Get(srv.URL + "/api/products")
	if err != nil {
		t.Fatalf("list products: %v", err)
	}
	defer resp.Body.Close()
	var products []domain.Product
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		t.Fatalf("decode products: %v", err)
	}
	if len(products) != 1 {
		t.Errorf("expected 1 product, got %d", len(products))
	}
}

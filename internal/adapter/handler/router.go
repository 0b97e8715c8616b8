package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(h *HTTPHandler) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger)
	r.Use(middleware.Timeout(15 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/stock/add", h.addStock)
		r.Post("/stock/remove", h.removeStock)
		r.Post("/stock/transfer", h.transferStock)
		r.Get("/stock/{productID}/{warehouseID}", h.getStockLevel)

		r.Post("/orders/sales", h.createSalesOrder)
		r.Post("/orders/sales/{id}/fulfill", h.fulfillSalesOrder)
		r.Get("/orders/sales/{id}", h.getSalesOrder)
		r.Post("/orders/purchase", h.createPurchaseOrder)

		r.Post("/products", h.createProduct)
		r.Get("/products", h.listProducts)
		r.Post("/suppliers", h.createSupplier)
		r.Get("/suppliers", h.listSuppliers)
		r.Post("/warehouses", h.createWarehouse)
		r.Get("/warehouses", h.listWarehouses)
	})

	return r
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/stockroom/scm/internal/adapter/storage"
	"github.com/stockroom/scm/internal/core/service"
)

const (
	productID     = "P-LOAD"
	warehouseA    = "W-A"
	warehouseB    = "W-B"
	initialStock  = 200
	totalBuyers   = 500
	transferUnits = 5
	transferRuns  = 20
)

// loadgen drives the services in-process with concurrent buyers and crossing
// transfers, then checks that stock was conserved and never oversold.
func main() {
	ctx := context.Background()

	store := storage.NewMemoryAdapter()

	// Optional redis availability gate: buyers reserve against the cache
	// before hitting the ledger and give the reservation back on failure.
	var cache *storage.RedisAdapter
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: addr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatalf("failed to connect redis: %v", err)
		}
		defer rdb.Close()
		cache = storage.NewRedisAdapter(rdb)
	}

	inventory := service.NewInventoryService(store, nil)
	orders := service.NewOrderService(inventory, store, store, store, store, store, nil)

	if err := inventory.AddStock(ctx, productID, warehouseA, initialStock); err != nil {
		log.Fatalf("seed stock: %v", err)
	}
	if err := inventory.AddStock(ctx, productID, warehouseB, initialStock); err != nil {
		log.Fatalf("seed stock: %v", err)
	}
	if cache != nil {
		if err := cache.SetStock(ctx, productID, warehouseA, initialStock); err != nil {
			log.Fatalf("seed cache: %v", err)
		}
	}

	var fulfilled, soldOut, failed atomic.Int32
	var wg sync.WaitGroup

	start := time.Now()

	// Crossing transfers between the two warehouses; conservation is checked
	// at the end.
	for i := 0; i < transferRuns; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			if err := inventory.TransferStock(ctx, productID, warehouseA, warehouseB, transferUnits); err != nil {
				log.Printf("transfer A->B: %v", err)
			}
		}()
		go func() {
			defer wg.Done()
			if err := inventory.TransferStock(ctx, productID, warehouseB, warehouseA, transferUnits); err != nil {
				log.Printf("transfer B->A: %v", err)
			}
		}()
	}

	for i := 0; i < totalBuyers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()

			if cache != nil {
				ok, err := cache.DecrementStock(ctx, productID, warehouseA, 1)
				if err != nil {
					failed.Add(1)
					return
				}
				if !ok {
					soldOut.Add(1)
					return
				}
			}

			order, err := orders.CreateSalesOrder(ctx, productID, 1, fmt.Sprintf("buyer-%d", n), warehouseA)
			if err != nil {
				if cache != nil {
					_ = cache.IncrementStock(ctx, productID, warehouseA, 1)
				}
				if errors.Is(err, service.ErrInsufficientStock) {
					soldOut.Add(1)
				} else {
					failed.Add(1)
				}
				return
			}

			if _, err := orders.FulfillSalesOrder(ctx, order.ID, warehouseA, "load test destination"); err != nil {
				if cache != nil {
					_ = cache.IncrementStock(ctx, productID, warehouseA, 1)
				}
				if errors.Is(err, service.ErrInsufficientStock) {
					soldOut.Add(1)
				} else {
					failed.Add(1)
				}
				return
			}
			fulfilled.Add(1)
		}(i)
	}

	wg.Wait()
	elapsed := time.Since(start)

	stockA, _ := inventory.GetStockLevel(ctx, productID, warehouseA)
	stockB, _ := inventory.GetStockLevel(ctx, productID, warehouseB)
	shipments, _ := store.ListShipments(ctx)

	fmt.Printf("elapsed:    %v\n", elapsed)
	fmt.Printf("fulfilled:  %d\n", fulfilled.Load())
	fmt.Printf("sold out:   %d\n", soldOut.Load())
	fmt.Printf("failed:     %d\n", failed.Load())
	fmt.Printf("stock A/B:  %d/%d\n", stockA, stockB)
	fmt.Printf("shipments:  %d\n", len(shipments))

	if stockA < 0 || stockB < 0 {
		log.Fatal("FAIL: negative stock")
	}
	if stockA+stockB+int(fulfilled.Load()) != 2*initialStock {
		log.Fatalf("FAIL: stock not conserved: %d + %d + %d != %d",
			stockA, stockB, fulfilled.Load(), 2*initialStock)
	}
	if int(fulfilled.Load()) != len(shipments) {
		log.Fatalf("FAIL: %d fulfillments but %d shipments", fulfilled.Load(), len(shipments))
	}
	fmt.Println("OK: stock conserved, one shipment per fulfillment")
}

package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/stockroom/scm/internal/adapter/handler"
	"github.com/stockroom/scm/internal/adapter/storage"
	"github.com/stockroom/scm/internal/config"
	"github.com/stockroom/scm/internal/core/service"
	"github.com/stockroom/scm/internal/port"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Storage backend: MySQL when a DSN is configured, in-memory otherwise.
	var store port.Store
	if cfg.MySQLDSN != "" {
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			log.Fatalf("failed to connect mysql: %v", err)
		}
		defer db.Close()
		db.SetMaxOpenConns(50)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(5 * time.Minute)

		if err := db.PingContext(ctx); err != nil {
			log.Fatalf("failed to ping mysql: %v", err)
		}
		log.Println("connected to mysql")
		store = storage.NewMySQLAdapter(db)
	} else {
		log.Println("using in-memory storage")
		store = storage.NewMemoryAdapter()
	}

	// Optional stock cache.
	var cache port.StockCache
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, PoolSize: 100})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatalf("failed to connect redis: %v", err)
		}
		defer rdb.Close()
		log.Println("connected to redis")
		cache = storage.NewRedisAdapter(rdb)
	}

	inventoryService := service.NewInventoryService(store, cache)
	orderService := service.NewOrderService(inventoryService, store, store, store, store, store, nil)

	h := handler.NewHTTPHandler(inventoryService, orderService, store, store, store, cache)
	router := handler.NewRouter(h)

	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	go func() {
		log.Printf("%s listening on %s", cfg.ServiceName, cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			log.Printf("HTTP server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	httpServer.Shutdown(shutdownCtx)
	log.Println("HTTP server stopped")
}

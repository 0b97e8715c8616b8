package storage

import (
	"context"
	"os"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/redis/go-redis/v9"
)

func getRedisClient(t *testing.T) *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	return client
}

func TestStockCache_SetGet(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	adapter := NewRedisAdapter(client)

	client.Del(ctx, "stock:test-product:test-wh")

	_, found, err := adapter.GetStock(ctx, "test-product", "test-wh")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Error("expected miss before SetStock")
	}

	if err := adapter.SetStock(ctx, "test-product", "test-wh", 25); err != nil {
		t.Fatalf("SetStock failed: %v", err)
	}

	quantity, found, err := adapter.GetStock(ctx, "test-product", "test-wh")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !found || quantity != 25 {
		t.Errorf("expected 25 (found), got %d (found=%v)", quantity, found)
	}
}

func TestDecrementStock_Success(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	adapter := NewRedisAdapter(client)

	client.Del(ctx, "stock:test-product:test-wh")
	adapter.SetStock(ctx, "test-product", "test-wh", 10)

	ok, err := adapter.DecrementStock(ctx, "test-product", "test-wh", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Error("expected success")
	}

	quantity, _, _ := adapter.GetStock(ctx, "test-product", "test-wh")
	if quantity != 7 {
		t.Errorf("expected stock 7, got %d", quantity)
	}
}

func TestDecrementStock_Insufficient(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	adapter := NewRedisAdapter(client)

	client.Del(ctx, "stock:test-product:test-wh")
	adapter.SetStock(ctx, "test-product", "test-wh", 2)

	ok, err := adapter.DecrementStock(ctx, "test-product", "test-wh", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected failure for insufficient cached stock")
	}

	quantity, _, _ := adapter.GetStock(ctx, "test-product", "test-wh")
	if quantity != 2 {
		t.Errorf("expected stock unchanged at 2, got %d", quantity)
	}
}

func TestDecrementStock_MissingKey(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	adapter := NewRedisAdapter(client)

	client.Del(ctx, "stock:missing-product:test-wh")

	ok, err := adapter.DecrementStock(ctx, "missing-product", "test-wh", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected failure for unset key")
	}
}

func TestDecrementStock_ConcurrentNoOversell(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	adapter := NewRedisAdapter(client)

	client.Del(ctx, "stock:race-product:test-wh")
	adapter.SetStock(ctx, "race-product", "test-wh", 20)

	var success atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := adapter.DecrementStock(ctx, "race-product", "test-wh", 1)
			if err == nil && ok {
				success.Add(1)
			}
		}()
	}
	wg.Wait()

	if success.Load() != 20 {
		t.Errorf("expected exactly 20 successful decrements, got %d", success.Load())
	}
	quantity, _, _ := adapter.GetStock(ctx, "race-product", "test-wh")
	if quantity != 0 {
		t.Errorf("expected stock 0, got %d", quantity)
	}
}

func TestIncrementStock_RestoresLevel(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	adapter := NewRedisAdapter(client)

	client.Del(ctx, "stock:test-product:test-wh")
	adapter.SetStock(ctx, "test-product", "test-wh", 5)

	adapter.DecrementStock(ctx, "test-product", "test-wh", 2)
	if err := adapter.IncrementStock(ctx, "test-product", "test-wh", 2); err != nil {
		t.Fatalf("IncrementStock failed: %v", err)
	}

	quantity, _, _ := adapter.GetStock(ctx, "test-product", "test-wh")
	if quantity != 5 {
		t.Errorf("expected stock restored to 5, got %d", quantity)
	}
}

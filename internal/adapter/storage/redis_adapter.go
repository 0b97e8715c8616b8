package storage

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

const stockKeyPrefix = "stock:"

var decrementStockScript = redis.NewScript(`
local key = KEYS[1]
local quantity = tonumber(ARGV[1])

local current = redis.call('GET', key)
if not current then
	return 0
end

current = tonumber(current)
if current >= quantity then
	redis.call('DECRBY', key, quantity)
	return 1
end

return 0
`)

// RedisAdapter mirrors stock levels keyed by "stock:{product}:{warehouse}".
// It implements the StockCache port; the conditional decrement runs as a Lua
// script so the check and the DECRBY are atomic on the Redis side.
type RedisAdapter struct {
	client *redis.Client
}

func NewRedisAdapter(client *redis.Client) *RedisAdapter {
	return &RedisAdapter{client: client}
}

func stockKey(productID, warehouseID string) string {
	return stockKeyPrefix + productID + ":" + warehouseID
}

func (r *RedisAdapter) SetStock(ctx context.Context, productID, warehouseID string, quantity int) error {
	return r.client.Set(ctx, stockKey(productID, warehouseID), quantity, 0).Err()
}

func (r *RedisAdapter) GetStock(ctx context.Context, productID, warehouseID string) (int, bool, error) {
	quantity, err := r.client.Get(ctx, stockKey(productID, warehouseID)).Int()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return quantity, true, nil
}

func (r *RedisAdapter) DecrementStock(ctx context.Context, productID, warehouseID string, quantity int) (bool, error) {
	result, err := decrementStockScript.Run(ctx, r.client, []string{stockKey(productID, warehouseID)}, quantity).Int()
	if err != nil {
		return false, err
	}
	return result == 1, nil
}

func (r *RedisAdapter) IncrementStock(ctx context.Context, productID, warehouseID string, quantity int) error {
	return r.client.IncrBy(ctx, stockKey(productID, warehouseID), int64(quantity)).Err()
}

package redis

import (
	"context"
	"fmt"
	"strconv"

	"reward-center/internal/domain"
	"reward-center/internal/solana"

	"github.com/go-redis/redis/v8"
)

const (
	statsListingsField = "active_listings"
	statsOffersField   = "open_offers"
)

// RedisStatsCache keeps per-collection listing and offer counts in a hash so
// both counters travel together.
type RedisStatsCache struct {
	client *redis.Client
}

func NewRedisStatsCache(client *redis.Client) *RedisStatsCache {
	return &RedisStatsCache{client: client}
}

func statsKey(collection solana.Pubkey) string {
	return fmt.Sprintf("collection:%s:stats", collection.String())
}

func (r *RedisStatsCache) AddActiveListings(ctx context.Context, collection solana.Pubkey, delta int64) error {
	return r.client.HIncrBy(ctx, statsKey(collection), statsListingsField, delta).Err()
}

func (r *RedisStatsCache) AddOpenOffers(ctx context.Context, collection solana.Pubkey, delta int64) error {
	return r.client.HIncrBy(ctx, statsKey(collection), statsOffersField, delta).Err()
}

func (r *RedisStatsCache) GetStats(ctx context.Context, collection solana.Pubkey) (*domain.CollectionStats, error) {
	values, err := r.client.HGetAll(ctx, statsKey(collection)).Result()
	if err != nil {
		return nil, err
	}

	stats := &domain.CollectionStats{}
	if raw, ok := values[statsListingsField]; ok {
		if stats.ActiveListings, err = strconv.ParseInt(raw, 10, 64); err != nil {
			return nil, err
		}
	}
	if raw, ok := values[statsOffersField]; ok {
		if stats.OpenOffers, err = strconv.ParseInt(raw, 10, 64); err != nil {
			return nil, err
		}
	}

	return stats, nil
}

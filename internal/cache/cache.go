package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"cateringCMS/internal/config"

	"github.com/redis/go-redis/v9"
)

// Namespaces group entries that are invalidated together.
const (
	GalleryList   = "gallery:list"
	PublicReviews = "reviews:public"
)

// Cache is a read-through store for public listings. A miss is reported as
// found == false with a nil error.
//
// Entries are stamped with their namespace generation. Readers take the
// generation before querying the source and build the key from it; writers
// call Invalidate after their change is committed. A reader that loaded rows
// before the change can then only fill a key of the old generation, which
// nobody reads again.
type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Generation(ctx context.Context, namespace string) (int64, error)
	Invalidate(ctx context.Context, namespace string) error
}

// Key builds the entry key for a namespace generation, e.g.
// "gallery:list:v3:active".
func Key(namespace string, generation int64, name string) string {
	key := fmt.Sprintf("%s:v%d", namespace, generation)
	if name != "" {
		key += ":" + name
	}
	return key
}

func generationKey(namespace string) string {
	return namespace + ":gen"
}

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// New returns a Redis-backed cache when enabled and reachable, and a no-op
// cache otherwise.
func New(cfg config.Redis) (Cache, func() error) {
	if !cfg.Enabled {
		return Noop{}, func() error { return nil }
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return Noop{}, func() error { return nil }
	}

	return NewRedisCache(client, cfg.TTL), client.Close
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache get %s: %w", key, err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("cache decode %s: %w", key, err)
	}

	return true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", key, err)
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}

	return nil
}

// Generation reads the namespace counter; an unset counter is generation 0.
func (c *RedisCache) Generation(ctx context.Context, namespace string) (int64, error) {
	gen, err := c.client.Get(ctx, generationKey(namespace)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("cache generation %s: %w", namespace, err)
	}
	return gen, nil
}

// Invalidate moves the namespace to a new generation and then drops the
// entries it can find. Only the INCR matters for correctness; the sweep
// frees memory ahead of the TTL.
func (c *RedisCache) Invalidate(ctx context.Context, namespace string) error {
	if err := c.client.Incr(ctx, generationKey(namespace)).Err(); err != nil {
		return fmt.Errorf("cache invalidate %s: %w", namespace, err)
	}

	return c.deletePrefix(ctx, namespace+":v")
}

func (c *RedisCache) deletePrefix(ctx context.Context, prefix string) error {
	iter := c.client.Scan(ctx, 0, prefix+"*", 100).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("cache scan %s: %w", prefix, err)
	}

	if len(keys) == 0 {
		return nil
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("cache delete %s: %w", prefix, err)
	}

	return nil
}

// Noop never stores anything.
type Noop struct{}

func (Noop) Get(context.Context, string, any) (bool, error)   { return false, nil }
func (Noop) Set(context.Context, string, any) error           { return nil }
func (Noop) Generation(context.Context, string) (int64, error) { return 0, nil }
func (Noop) Invalidate(context.Context, string) error          { return nil }

package cache_utils

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"taskflow/internal/cache"

	"github.com/valkey-io/valkey-go"
)

const (
	DefaultCacheTimeout = 10 * time.Second
	DefaultCacheExpiry  = 10 * time.Minute
	DefaultQueueTimeout = 30 * time.Second
)

// CacheUtil stores JSON-encoded values of T under a fixed key prefix.
// Misses and decoding failures both read as nil.
type CacheUtil[T any] struct {
	client  valkey.Client
	prefix  string
	timeout time.Duration
	expiry  time.Duration
}

func NewCacheUtil[T any](client valkey.Client, prefix string) *CacheUtil[T] {
	return NewCacheUtilWithExpiry[T](client, prefix, DefaultCacheExpiry)
}

func NewCacheUtilWithExpiry[T any](client valkey.Client, prefix string, expiry time.Duration) *CacheUtil[T] {
	return &CacheUtil[T]{
		client:  client,
		prefix:  prefix,
		timeout: DefaultCacheTimeout,
		expiry:  expiry,
	}
}

// TestCacheConnection writes, reads and removes a probe key.
func TestCacheConnection() error {
	cacheUtil := NewCacheUtil[string](cache.GetCache(), "taskflow:probe:")

	key := "connection_test"
	value := "valkey_is_working"

	cacheUtil.Set(key, &value)

	retrieved := cacheUtil.Get(key)
	if retrieved == nil {
		return errors.New("could not retrieve cached value")
	}

	if *retrieved != value {
		return errors.New("retrieved value does not match expected")
	}

	cacheUtil.Invalidate(key)

	if cacheUtil.Get(key) != nil {
		return errors.New("probe key was not invalidated")
	}

	return nil
}

func (c *CacheUtil[T]) Get(key string) *T {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	result := c.client.Do(ctx, c.client.B().Get().Key(c.prefix+key).Build())
	if result.Error() != nil {
		return nil
	}

	data, err := result.AsBytes()
	if err != nil {
		return nil
	}

	var item T
	if err := json.Unmarshal(data, &item); err != nil {
		return nil
	}

	return &item
}

func (c *CacheUtil[T]) Set(key string, item *T) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	data, err := json.Marshal(item)
	if err != nil {
		return
	}

	c.client.Do(ctx, c.client.B().Set().Key(c.prefix+key).Value(string(data)).Ex(c.expiry).Build())
}

func (c *CacheUtil[T]) Invalidate(key string) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	c.client.Do(ctx, c.client.B().Del().Key(c.prefix+key).Build())
}

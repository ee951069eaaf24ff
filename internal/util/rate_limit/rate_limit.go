package rate_limit

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"

	"taskflow/internal/cache"

	"github.com/valkey-io/valkey-go"
)

// RateLimiter is a Valkey-backed token bucket shared by all API nodes.
// Buckets are addressed by a caller-chosen key such as "password_reset:<email>".
type RateLimiter struct {
	client valkey.Client
}

type RateLimitResult struct {
	Allowed       bool      `json:"allowed"`
	Remaining     int       `json:"remaining"`
	ResetTime     time.Time `json:"resetTime"`
	RetryAfterSec int       `json:"retryAfterSec,omitempty"`
}

const (
	defaultTimeout = 5 * time.Second
	keyPrefix      = "taskflow:rate_limit:"
	bucketTTLSec   = 3600
)

// Refill, consume and persist in one round trip so concurrent callers
// never observe a half-updated bucket.
const tokenBucketLuaScript = `
local key = KEYS[1]
local now = tonumber(ARGV[1])
local per_minute = tonumber(ARGV[2])
local burst_limit = tonumber(ARGV[3])
local ttl = tonumber(ARGV[4])

local current = redis.call('HMGET', key, 'tokens', 'last_refill')
local tokens = tonumber(current[1]) or burst_limit
local last_refill = tonumber(current[2]) or now

local elapsed = math.max(0, now - last_refill)
local tokens_to_add = math.floor(elapsed * per_minute / 60000)
if tokens_to_add > 0 then
    tokens = math.min(burst_limit, tokens + tokens_to_add)
    last_refill = now
end

local allowed = 0
if tokens >= 1 then
    allowed = 1
    tokens = tokens - 1
end

redis.call('HMSET', key, 'tokens', tokens, 'last_refill', last_refill)
redis.call('EXPIRE', key, ttl)

local time_to_full = 0
if tokens < burst_limit then
    time_to_full = math.ceil((burst_limit - tokens) * 60000 / per_minute)
end

return {allowed, tokens, time_to_full}
`

func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		client: cache.GetCache(),
	}
}

func (r *RateLimiter) CheckRateLimit(key string, perMinuteLimit, burstLimit int) (*RateLimitResult, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	if perMinuteLimit <= 0 {
		perMinuteLimit = 1
	}
	if burstLimit <= 0 {
		burstLimit = perMinuteLimit
	}

	result := r.client.Do(ctx, r.client.B().Eval().
		Script(tokenBucketLuaScript).
		Numkeys(1).
		Key(keyPrefix+key).
		Arg(strconv.FormatInt(time.Now().UnixMilli(), 10)).
		Arg(strconv.Itoa(perMinuteLimit)).
		Arg(strconv.Itoa(burstLimit)).
		Arg(strconv.Itoa(bucketTTLSec)).
		Build())

	if result.Error() != nil {
		return nil, fmt.Errorf("rate limit check failed: %w", result.Error())
	}

	values, err := result.AsIntSlice()
	if err != nil {
		return nil, fmt.Errorf("failed to parse rate limit result: %w", err)
	}

	if len(values) < 3 {
		return nil, fmt.Errorf("invalid rate limit result: expected 3 values, got %d", len(values))
	}

	allowed := values[0] == 1

	var retryAfterSec int
	if !allowed {
		retryAfterSec = max(int(math.Ceil(60.0/float64(perMinuteLimit))), 1)
	}

	return &RateLimitResult{
		Allowed:       allowed,
		Remaining:     int(values[1]),
		ResetTime:     time.Now().Add(time.Duration(values[2]) * time.Millisecond),
		RetryAfterSec: retryAfterSec,
	}, nil
}

func (r *RateLimiter) ResetRateLimit(key string) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	return r.client.Do(ctx, r.client.B().Del().Key(keyPrefix+key).Build()).Error()
}

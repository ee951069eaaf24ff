package rate_limit

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func Test_CheckRateLimit_WithinLimits_AllowsRequest(t *testing.T) {
	rateLimiter := NewRateLimiter()
	key := "test:" + uuid.NewString()
	burstLimit := 5

	rateLimiter.ResetRateLimit(key)

	result, err := rateLimiter.CheckRateLimit(key, 10, burstLimit)

	assert.NoError(t, err)
	assert.True(t, result.Allowed)
	assert.Equal(t, burstLimit-1, result.Remaining)
	assert.Equal(t, 0, result.RetryAfterSec)
}

func Test_CheckRateLimit_WhenBurstExhausted_DeniesRequest(t *testing.T) {
	rateLimiter := NewRateLimiter()
	key := "test:" + uuid.NewString()
	burstLimit := 3

	rateLimiter.ResetRateLimit(key)

	for i := 0; i < burstLimit; i++ {
		result, err := rateLimiter.CheckRateLimit(key, 1, burstLimit)
		assert.NoError(t, err)
		assert.True(t, result.Allowed, "Request %d should be allowed", i+1)
	}

	result, err := rateLimiter.CheckRateLimit(key, 1, burstLimit)
	assert.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Equal(t, 0, result.Remaining)
	assert.Equal(t, 60, result.RetryAfterSec)
	assert.True(t, result.ResetTime.After(time.Now()))
}

func Test_CheckRateLimit_WhenDifferentKeys_LimitsAreIsolated(t *testing.T) {
	rateLimiter := NewRateLimiter()
	firstKey := "test:" + uuid.NewString()
	secondKey := "test:" + uuid.NewString()

	result, err := rateLimiter.CheckRateLimit(firstKey, 1, 1)
	assert.NoError(t, err)
	assert.True(t, result.Allowed)

	result, err = rateLimiter.CheckRateLimit(firstKey, 1, 1)
	assert.NoError(t, err)
	assert.False(t, result.Allowed)

	result, err = rateLimiter.CheckRateLimit(secondKey, 1, 1)
	assert.NoError(t, err)
	assert.True(t, result.Allowed)
}

func Test_CheckRateLimit_WhenTokensRefill_AllowsRequestAgain(t *testing.T) {
	rateLimiter := NewRateLimiter()
	key := "test:" + uuid.NewString()

	// 600 per minute refills one token every 100ms
	result, err := rateLimiter.CheckRateLimit(key, 600, 1)
	assert.NoError(t, err)
	assert.True(t, result.Allowed)

	result, err = rateLimiter.CheckRateLimit(key, 600, 1)
	assert.NoError(t, err)
	assert.False(t, result.Allowed)

	time.Sleep(150 * time.Millisecond)

	result, err = rateLimiter.CheckRateLimit(key, 600, 1)
	assert.NoError(t, err)
	assert.True(t, result.Allowed)
}

func Test_ResetRateLimit_WhenBucketExhausted_RestoresFullBucket(t *testing.T) {
	rateLimiter := NewRateLimiter()
	key := "test:" + uuid.NewString()

	rateLimiter.CheckRateLimit(key, 1, 1)
	result, _ := rateLimiter.CheckRateLimit(key, 1, 1)
	assert.False(t, result.Allowed)

	assert.NoError(t, rateLimiter.ResetRateLimit(key))

	result, err := rateLimiter.CheckRateLimit(key, 1, 1)
	assert.NoError(t, err)
	assert.True(t, result.Allowed)
}

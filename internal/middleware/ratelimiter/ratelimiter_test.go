package ratelimiter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUserRateLimiter_Allow(t *testing.T) {
	t.Run("allows up to capacity then rejects", func(t *testing.T) {
		rl := New(0.001, 2, time.Hour) // negligible refill during the test
		defer rl.Stop()

		assert.True(t, rl.Allow("1.2.3.4"))
		assert.True(t, rl.Allow("1.2.3.4"))
		assert.False(t, rl.Allow("1.2.3.4"))
	})

	t.Run("identities are limited independently", func(t *testing.T) {
		rl := New(0.001, 1, time.Hour)
		defer rl.Stop()

		assert.True(t, rl.Allow("1.2.3.4"))
		assert.False(t, rl.Allow("1.2.3.4"))
		assert.True(t, rl.Allow("5.6.7.8"))
	})

	t.Run("tokens refill over time", func(t *testing.T) {
		rl := New(100, 1, time.Hour) // 100 tokens/sec
		defer rl.Stop()

		assert.True(t, rl.Allow("1.2.3.4"))
		assert.False(t, rl.Allow("1.2.3.4"))

		time.Sleep(20 * time.Millisecond)
		assert.True(t, rl.Allow("1.2.3.4"))
	})

	t.Run("idle limiters expire", func(t *testing.T) {
		rl := New(0.001, 1, 10*time.Millisecond)
		defer rl.Stop()

		assert.True(t, rl.Allow("1.2.3.4"))
		assert.False(t, rl.Allow("1.2.3.4"))

		// After expiration the identity starts with a fresh bucket.
		time.Sleep(50 * time.Millisecond)
		assert.True(t, rl.Allow("1.2.3.4"))
	})
}

func TestUserRateLimiter_Concurrent(t *testing.T) {
	rl := New(0.001, 50, time.Hour)
	defer rl.Stop()

	const goroutines = 100
	results := make(chan bool, goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			results <- rl.Allow("shared")
		}()
	}

	allowed := 0
	for i := 0; i < goroutines; i++ {
		if <-results {
			allowed++
		}
	}
	assert.Equal(t, 50, allowed)
}

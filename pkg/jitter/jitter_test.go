package jitter

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDuration_Bounds(t *testing.T) {
	for i := 0; i < 100; i++ {
		d := Duration(time.Second, DefaultJitter)
		assert.GreaterOrEqual(t, d, time.Second)
		assert.LessOrEqual(t, d, 1500*time.Millisecond)
	}
}

func TestDurationWithSeed_Deterministic(t *testing.T) {
	a := DurationWithSeed(time.Second, 0.5, rand.New(rand.NewSource(42)))
	b := DurationWithSeed(time.Second, 0.5, rand.New(rand.NewSource(42)))
	assert.Equal(t, a, b)
}

func TestExponentialBackoff_Capped(t *testing.T) {
	assert.Equal(t, 100*time.Millisecond, ExponentialBackoff(100*time.Millisecond, time.Second, 0, 0))
	assert.Equal(t, 400*time.Millisecond, ExponentialBackoff(100*time.Millisecond, time.Second, 2, 0))
	assert.Equal(t, time.Second, ExponentialBackoff(100*time.Millisecond, time.Second, 10, 0))
}

func TestRetry(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), 3, time.Millisecond, time.Millisecond, func() error {
		calls++
		if calls < 2 {
			return errors.New("transient")
		}
		return nil
	}, nil)
	assert.NoError(t, err)
	assert.Equal(t, 2, calls)

	boom := errors.New("permanent")
	retries := 0
	err = Retry(context.Background(), 3, time.Millisecond, time.Millisecond, func() error {
		return boom
	}, func(int, error, time.Duration) { retries++ })
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, retries)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = Retry(ctx, 3, time.Second, time.Second, func() error { return boom }, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

package redislock

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalLocker(t *testing.T) {
	ctx := context.Background()

	t.Run("runs fn while holding the key", func(t *testing.T) {
		l := NewLocal()
		ran := false
		err := l.WithLock(ctx, "k", func(context.Context) error {
			ran = true
			return nil
		})
		require.NoError(t, err)
		assert.True(t, ran)
	})

	t.Run("second holder fails fast", func(t *testing.T) {
		l := NewLocal()
		err := l.WithLock(ctx, "k", func(inner context.Context) error {
			return l.WithLock(inner, "k", func(context.Context) error {
				t.Fatal("must not run while key is held")
				return nil
			})
		})
		assert.True(t, errors.Is(err, ErrNotAcquired))
	})

	t.Run("distinct keys do not contend", func(t *testing.T) {
		l := NewLocal()
		err := l.WithLock(ctx, "a", func(inner context.Context) error {
			return l.WithLock(inner, "b", func(context.Context) error {
				return nil
			})
		})
		assert.NoError(t, err)
	})

	t.Run("released key can be taken again", func(t *testing.T) {
		l := NewLocal()
		require.NoError(t, l.WithLock(ctx, "k", func(context.Context) error { return nil }))
		assert.NoError(t, l.WithLock(ctx, "k", func(context.Context) error { return nil }))
	})
}

func TestSlotKey(t *testing.T) {
	assert.Equal(t, "lock:slot:d001:2026-09-10:09:20", SlotKey("d001", "2026-09-10", "09:20"))
}

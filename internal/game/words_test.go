package game

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWordPoolPick(t *testing.T) {
	t.Run("excludes recent words", func(t *testing.T) {
		pool := NewWordPool([]string{"alpha", "beta", "gamma"}, 42)
		for i := 0; i < 50; i++ {
			assert.Equal(t, "gamma", pool.Pick([]string{"alpha", "beta"}))
		}
	})

	t.Run("falls back when window covers the pool", func(t *testing.T) {
		pool := NewWordPool([]string{"alpha"}, 42)
		assert.Equal(t, "alpha", pool.Pick([]string{"alpha"}))
	})

	t.Run("defaults when given no words", func(t *testing.T) {
		pool := NewWordPool(nil, 42)
		assert.Equal(t, len(defaultWords), pool.Size())
		assert.Contains(t, defaultWords, pool.Pick(nil))
	})

	t.Run("one pool serves concurrent rooms", func(t *testing.T) {
		pool := NewWordPool([]string{"alpha", "beta", "gamma"}, 7)
		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 200; j++ {
					assert.NotEmpty(t, pool.Pick(nil))
				}
			}()
		}
		wg.Wait()
	})
}

func TestAppendRecent(t *testing.T) {
	recent := []string{}
	for _, w := range []string{"a", "b", "c", "d"} {
		recent = appendRecent(recent, w, 3)
	}
	assert.Equal(t, []string{"b", "c", "d"}, recent)

	assert.Equal(t, []string{"a", "b"}, appendRecent([]string{"a"}, "b", 0),
		"zero limit means unbounded")
}

package store

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStatus_Track(t *testing.T) {
	s := &status{logger: slog.Default()}

	failed := errors.New("boom")
	settle := s.track("op")
	assert.True(t, s.Busy())
	settle(&failed)
	assert.False(t, s.Busy())
	assert.Equal(t, "boom", s.Err())

	noIdentity := fmt.Errorf("op: %w", ErrNoIdentity)
	s.track("op")(&noIdentity)
	assert.Equal(t, "boom", s.Err())

	var ok error
	s.track("op")(&ok)
	assert.Empty(t, s.Err())
}

func TestKeyedMutex_SerializesSameKey(t *testing.T) {
	var k keyedMutex
	var mu sync.Mutex
	var order []string

	unlock := k.Lock("order:1")

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer k.Lock("order:1")()
		mu.Lock()
		order = append(order, "second")
		mu.Unlock()
	}()

	// a different key is not blocked
	k.Lock("order:2")()

	time.Sleep(20 * time.Millisecond)
	mu.Lock()
	order = append(order, "first")
	mu.Unlock()
	unlock()
	wg.Wait()

	assert.Equal(t, []string{"first", "second"}, order)
	assert.Empty(t, k.locks)
}

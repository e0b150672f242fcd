package roomlock

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSerializesSameRoom(t *testing.T) {
	km := New()

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := km.Lock("room-1")
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, counter)
}

func TestDifferentRoomsDoNotBlock(t *testing.T) {
	km := New()

	unlockA := km.Lock("room-a")
	defer unlockA()

	// Must not deadlock while room-a is held
	done := make(chan struct{})
	go func() {
		unlockB := km.Lock("room-b")
		unlockB()
		close(done)
	}()
	<-done
}

func TestReentryAfterUnlock(t *testing.T) {
	km := New()

	unlock := km.Lock("room-1")
	unlock()

	unlock = km.Lock("room-1")
	unlock()
}

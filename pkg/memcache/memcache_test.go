package mem

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResetTokenIsSingleUse(t *testing.T) {
	store := NewResetTokens()
	store.Set("tok", "alice@example.com", time.Minute)

	email, ok := store.Peek("tok")
	require.True(t, ok)
	assert.Equal(t, "alice@example.com", email)

	assert.Equal(t, "alice@example.com", store.Consume("tok"))
	assert.Equal(t, "", store.Consume("tok"))
}

func TestResetTokenExpires(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	store := NewResetTokens()
	store.SetNowFunc(func() time.Time { return now })
	store.Set("tok", "bob@example.com", time.Minute)

	now = now.Add(2 * time.Minute)
	_, ok := store.Peek("tok")
	assert.False(t, ok)
	assert.Equal(t, "", store.Consume("tok"))
}

func TestKeyLocksSerializeSameKey(t *testing.T) {
	locks := NewKeyLocks()
	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.Lock("tour:1")
			defer unlock()
			current := counter
			time.Sleep(time.Microsecond)
			counter = current + 1
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, counter)
	assert.Equal(t, 0, locks.Len())
}

func TestKeyLocksIndependentKeys(t *testing.T) {
	locks := NewKeyLocks()
	unlockA := locks.Lock("tour:1")
	defer unlockA()

	done := make(chan struct{})
	go func() {
		unlockB := locks.Lock("tour:2")
		unlockB()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock on a different key blocked")
	}
}

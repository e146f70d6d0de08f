package session

import (
	"sync"
	"testing"

	"github.com/andrey2025-maker/SelenaZoo/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestStore_PutGetClear(t *testing.T) {
	store := NewStore()

	assert.Nil(t, store.Get(1))
	assert.False(t, store.Active(1))

	store.Put(1, &domain.Session{Flow: domain.FlowBroadcastAudience, InitiatorID: 1})

	sess := store.Get(1)
	assert.NotNil(t, sess)
	assert.Equal(t, domain.FlowBroadcastAudience, sess.Flow)
	assert.True(t, store.Active(1))

	store.Clear(1)
	assert.Nil(t, store.Get(1))
	assert.False(t, store.Active(1))
}

func TestStore_PutReplaces(t *testing.T) {
	store := NewStore()

	store.Put(1, &domain.Session{Flow: domain.FlowBroadcastAudience, InitiatorID: 1})
	store.Put(1, &domain.Session{Flow: domain.FlowRelaySelect, InitiatorID: 1})

	assert.Equal(t, domain.FlowRelaySelect, store.Get(1).Flow)
}

func TestStore_FlowNoneIsNotActive(t *testing.T) {
	store := NewStore()
	store.Put(1, &domain.Session{Flow: domain.FlowNone})
	assert.False(t, store.Active(1))
	assert.NotNil(t, store.Get(1))
}

func TestStore_ConcurrentAccess(t *testing.T) {
	store := NewStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			store.Put(id, &domain.Session{Flow: domain.FlowRelayChat, InitiatorID: id})
			store.Get(id)
			store.Active(id)
			store.Clear(id)
		}(int64(i))
	}
	wg.Wait()

	for i := int64(0); i < 50; i++ {
		assert.Nil(t, store.Get(i))
	}
}

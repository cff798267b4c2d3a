package cart

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deposito626-api/internal/cache"
	"deposito626-api/internal/model"
)

func TestCacheStoreRoundTrip(t *testing.T) {
	mem := cache.NewMemoryCache()
	defer mem.Close()

	cs := NewCacheStore(mem, time.Hour)
	s := NewStore(cs)
	s.AddItem(model.CartLine{ProductID: 3, Name: "Soda", Price: 2}, 4)

	state, err := cs.Load()
	require.NoError(t, err)
	require.NotNil(t, state)
	require.Len(t, state.Items, 1)
	assert.Equal(t, 4, state.Items[0].Quantity)
}

func TestCacheStoreMissIsEmpty(t *testing.T) {
	mem := cache.NewMemoryCache()
	defer mem.Close()

	cs := NewCacheStore(mem, time.Hour)
	state, err := cs.Load()
	require.NoError(t, err)
	assert.Nil(t, state)
}

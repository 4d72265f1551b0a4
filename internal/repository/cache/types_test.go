package cache_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Guyuepp/conduit-feed/internal/repository/cache"
)

func TestEntryExpiry(t *testing.T) {
	e := cache.NewEntry([]string{"go"}, time.Minute)
	assert.False(t, e.Stale())
	assert.True(t, e.Expired(time.Now().Add(2*time.Minute)))

	raw, err := json.Marshal(e)
	require.NoError(t, err)

	var back cache.Entry[[]string]
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, []string{"go"}, back.Data)
	assert.True(t, e.ExpireAt.Equal(back.ExpireAt))
}

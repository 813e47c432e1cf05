package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJobCache_InvalidSize(t *testing.T) {
	_, err := NewJobCache(0)
	require.Error(t, err)
}

func TestJobCache_PutGet(t *testing.T) {
	c, err := NewJobCache(4)
	require.NoError(t, err)

	c.Put(&Job{
		SID:         "1700000000.1",
		Query:       "search index=main error",
		ResultCount: 1,
		Results:     []map[string]any{{"host": "web-01"}},
		CompletedAt: time.Now(),
	})

	job, ok := c.Get("1700000000.1")
	require.True(t, ok)
	assert.Equal(t, "search index=main error", job.Query)
	assert.Equal(t, 1, c.Len())

	_, ok = c.Get("missing")
	assert.False(t, ok)
}

func TestJobCache_IgnoresEmptySID(t *testing.T) {
	c, err := NewJobCache(4)
	require.NoError(t, err)

	c.Put(nil)
	c.Put(&Job{})
	assert.Zero(t, c.Len())
}

func TestJobCache_Eviction(t *testing.T) {
	c, err := NewJobCache(2)
	require.NoError(t, err)

	c.Put(&Job{SID: "a"})
	c.Put(&Job{SID: "b"})
	c.Put(&Job{SID: "c"})

	_, ok := c.Get("a")
	assert.False(t, ok, "oldest job should be evicted")
	assert.Equal(t, []string{"b", "c"}, c.SIDs())
}

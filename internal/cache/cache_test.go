package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetGet(t *testing.T) {
	c := New(time.Minute)

	c.Set("jobs:1", []string{"a", "b"}, time.Minute, "jobs:1")

	val, ok := c.Get("jobs:1")
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, val)
}

func TestGetMissing(t *testing.T) {
	c := New(time.Minute)

	_, ok := c.Get("absent")
	assert.False(t, ok)
}

func TestInvalidateDropsTaggedKeys(t *testing.T) {
	c := New(time.Minute)

	c.Set("events:1:grouped", "grouped", time.Minute, "events:1")
	c.Set("events:1:list", "list", time.Minute, "events:1")
	c.Set("events:2:grouped", "other", time.Minute, "events:2")

	c.Invalidate("events:1")

	_, ok := c.Get("events:1:grouped")
	assert.False(t, ok)
	_, ok = c.Get("events:1:list")
	assert.False(t, ok)

	val, ok := c.Get("events:2:grouped")
	require.True(t, ok)
	assert.Equal(t, "other", val)
}

func TestInvalidateUnknownTagIsNoop(t *testing.T) {
	c := New(time.Minute)
	c.Set("k", 1, time.Minute, "t")

	c.Invalidate("unrelated")

	_, ok := c.Get("k")
	assert.True(t, ok)
}

func TestSetNonPositiveTTLUsesDefault(t *testing.T) {
	c := New(time.Minute)
	c.Set("k", 1, 0, "t")

	_, ok := c.Get("k")
	assert.True(t, ok)
}

func TestEntryExpires(t *testing.T) {
	c := New(time.Minute)
	c.Set("k", 1, 10*time.Millisecond, "t")

	time.Sleep(30 * time.Millisecond)

	_, ok := c.Get("k")
	assert.False(t, ok)
}

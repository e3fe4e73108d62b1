package cache

import (
	"testing"
	"time"

	"session-hub/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestProfileCache_SetAndGet(t *testing.T) {
	c := NewProfileCache(5 * time.Minute)
	c.Set("u1", domain.User{ID: "u1", Name: "Dr. A", Role: domain.RoleDoctor})

	user, found := c.Get("u1")
	assert.True(t, found)
	assert.Equal(t, "Dr. A", user.Name)
}

func TestProfileCache_GetMissing(t *testing.T) {
	c := NewProfileCache(5 * time.Minute)
	user, found := c.Get("absent")
	assert.False(t, found)
	assert.Nil(t, user)
}

func TestProfileCache_Expiry(t *testing.T) {
	c := NewProfileCache(10 * time.Millisecond)
	c.Set("u1", domain.User{ID: "u1"})

	time.Sleep(20 * time.Millisecond)
	_, found := c.Get("u1")
	assert.False(t, found)
}

func TestProfileCache_Invalidate(t *testing.T) {
	c := NewProfileCache(5 * time.Minute)
	c.Set("u1", domain.User{ID: "u1"})
	c.Invalidate("u1")

	_, found := c.Get("u1")
	assert.False(t, found)
}

func TestProfileCache_GetReturnsCopy(t *testing.T) {
	c := NewProfileCache(5 * time.Minute)
	c.Set("u1", domain.User{ID: "u1", Name: "original"})

	user, _ := c.Get("u1")
	user.Name = "mutated"

	again, _ := c.Get("u1")
	assert.Equal(t, "original", again.Name)
}

func TestProfileCache_Cleanup(t *testing.T) {
	c := NewProfileCache(1 * time.Millisecond)
	c.Set("u1", domain.User{ID: "u1"})
	time.Sleep(5 * time.Millisecond)
	c.cleanup()

	c.mu.RLock()
	defer c.mu.RUnlock()
	assert.Empty(t, c.entries)
}

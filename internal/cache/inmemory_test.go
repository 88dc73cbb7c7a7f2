package cache

import (
	"context"
	"testing"

	"github.com/buildline/buildline/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestInMemoryCache_DeleteByPrefix(t *testing.T) {
	ctx := context.Background()
	c := NewInMemoryCache(config.GetDefaultConfig())

	c.Set(ctx, GenerateKey(PrefixOrganization, "org_1"), "a", 0)
	c.Set(ctx, GenerateKey(PrefixOrganization, "org_2"), "b", 0)
	c.Set(ctx, GenerateKey(PrefixMembership, "org_1", "user_1"), "c", 0)

	c.DeleteByPrefix(ctx, PrefixOrganization)

	_, found := c.Get(ctx, GenerateKey(PrefixOrganization, "org_1"))
	assert.False(t, found)
	_, found = c.Get(ctx, GenerateKey(PrefixOrganization, "org_2"))
	assert.False(t, found)
	v, found := c.Get(ctx, GenerateKey(PrefixMembership, "org_1", "user_1"))
	assert.True(t, found)
	assert.Equal(t, "c", v)
}

func TestInMemoryCache_Disabled(t *testing.T) {
	ctx := context.Background()
	cfg := config.GetDefaultConfig()
	cfg.Cache.Enabled = false
	c := NewInMemoryCache(cfg)

	c.Set(ctx, "k", "v", 0)
	_, found := c.Get(ctx, "k")
	assert.False(t, found)
}

func TestGenerateKey(t *testing.T) {
	assert.Equal(t, "membership:v1::org_1:user_1", GenerateKey(PrefixMembership, "org_1", "user_1"))
}

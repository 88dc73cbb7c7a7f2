package idempotency

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateKey(t *testing.T) {
	g := NewGenerator()

	a := g.GenerateKey(ScopeBillingEvent, map[string]interface{}{"event_id": "evt_1", "organization_id": "org_1"})
	b := g.GenerateKey(ScopeBillingEvent, map[string]interface{}{"organization_id": "org_1", "event_id": "evt_1"})
	c := g.GenerateKey(ScopeBillingEvent, map[string]interface{}{"event_id": "evt_2", "organization_id": "org_1"})

	assert.Equal(t, a, b, "parameter order must not matter")
	assert.NotEqual(t, a, c)
	assert.True(t, strings.HasPrefix(a, string(ScopeBillingEvent)+"-"))
}

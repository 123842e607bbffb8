package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTTLPolicy_ZeroValueUsesBuiltinTable(t *testing.T) {
	var p TTLPolicy

	assert.Equal(t, 30*time.Minute, p.TTL("inventory"))
	assert.Equal(t, 10*time.Minute, p.TTL("notifications"))
	assert.Equal(t, 5*time.Minute, p.TTL("notifications/unread-count"))
	assert.Equal(t, 30*time.Minute, p.TTL("bills/17"), "sub-resources inherit the root lifetime")
	assert.Equal(t, DefaultTTL, p.TTL("recipes"))
}

func TestTTLPolicy_OverridesWinOverBuiltins(t *testing.T) {
	p := TTLPolicy{
		Default:   45 * time.Minute,
		Resources: map[string]time.Duration{"inventory": 5 * time.Minute},
	}

	assert.Equal(t, 5*time.Minute, p.TTL("inventory"))
	assert.Equal(t, 5*time.Minute, p.TTL("inventory/3"))
	assert.Equal(t, 10*time.Minute, p.TTL("notifications"), "unlisted resources keep the built-in lifetime")
	assert.Equal(t, 45*time.Minute, p.TTL("recipes"))
}

func TestDefaultResourceTTLs_ReturnsCopy(t *testing.T) {
	a := DefaultResourceTTLs()
	a["inventory"] = time.Second

	assert.Equal(t, 30*time.Minute, TTLPolicy{}.TTL("inventory"))
	assert.Equal(t, 30*time.Minute, DefaultResourceTTLs()["inventory"])
}

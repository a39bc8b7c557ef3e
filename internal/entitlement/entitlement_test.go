package entitlement

import (
	"testing"
	"time"

	"github.com/99designs/keyring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/sailcheck/internal/credential"
)

func TestFreeLimit(t *testing.T) {
	assert.Equal(t, 3, FreeLimit)
}

func TestCanCreateChecklist(t *testing.T) {
	subscribed := &State{ActiveEntitlements: []string{"premium"}}
	free := &State{ActiveEntitlements: []string{}}

	tests := []struct {
		name  string
		state *State
		count int
		want  bool
	}{
		{name: "subscribed under limit", state: subscribed, count: 0, want: true},
		{name: "subscribed at limit", state: subscribed, count: FreeLimit, want: true},
		{name: "subscribed far over limit", state: subscribed, count: 100, want: true},
		{name: "free with none", state: free, count: 0, want: true},
		{name: "free one below limit", state: free, count: FreeLimit - 1, want: true},
		{name: "free at limit", state: free, count: FreeLimit, want: false},
		{name: "free over limit", state: free, count: FreeLimit + 2, want: false},
		{name: "nil below limit", state: nil, count: 2, want: true},
		{name: "nil at limit", state: nil, count: FreeLimit, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanCreateChecklist(tt.state, tt.count))
		})
	}
}

func TestEntitlementHelpers(t *testing.T) {
	active := &State{ActiveEntitlements: []string{"premium"}}
	inactive := &State{}

	assert.True(t, HasActiveSubscription(active))
	assert.False(t, HasActiveSubscription(inactive))
	assert.False(t, HasActiveSubscription(nil))

	assert.Equal(t, []string{"premium"}, ActiveEntitlements(active))
	assert.Equal(t, []string{}, ActiveEntitlements(inactive))
	assert.Equal(t, []string{}, ActiveEntitlements(nil))
	assert.NotNil(t, ActiveEntitlements(inactive))

	got := ActiveEntitlements(active)
	got[0] = "changed"
	assert.Equal(t, []string{"premium"}, active.ActiveEntitlements)

	assert.True(t, HasEntitlement(active, "premium"))
	assert.False(t, HasEntitlement(active, "pro"))
	assert.False(t, HasEntitlement(inactive, "premium"))
	assert.False(t, HasEntitlement(nil, "premium"))
}

func TestIsConfigured(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{key: "", want: false},
		{key: "   ", want: false},
		{key: "your_api_key_here", want: false},
		{key: "your_ios_api_key_here", want: false},
		{key: "sk_test_1234567890", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, IsConfigured(tt.key))
		})
	}
}

func newTestCache() *Cache {
	c := NewCache(credential.NewStore(keyring.NewArrayKeyring(nil)))
	c.now = func() time.Time { return time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC) }
	return c
}

func TestCacheLifecycle(t *testing.T) {
	c := newTestCache()

	s, err := c.Load()
	require.NoError(t, err)
	assert.Nil(t, s)
	assert.False(t, CanCreateChecklist(s, FreeLimit))

	s, err = c.Activate("premium", "premium", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"premium"}, s.ActiveEntitlements)

	_, err = c.Activate("crew")
	require.NoError(t, err)

	loaded, err := c.Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, []string{"crew", "premium"}, loaded.ActiveEntitlements)
	assert.True(t, loaded.UpdatedAt.Equal(c.now()))
	assert.True(t, CanCreateChecklist(loaded, 10))

	require.NoError(t, c.Clear())
	s, err = c.Load()
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestCacheAPIKey(t *testing.T) {
	c := newTestCache()
	assert.Equal(t, "", c.APIKey("SAILCHECK_TEST_API_KEY"))

	require.NoError(t, c.secrets.Set(credential.KeyAPIKey, "sk_from_keyring"))
	assert.Equal(t, "sk_from_keyring", c.APIKey("SAILCHECK_TEST_API_KEY"))

	t.Setenv("SAILCHECK_TEST_API_KEY", "sk_from_env")
	assert.Equal(t, "sk_from_env", c.APIKey("SAILCHECK_TEST_API_KEY"))
}

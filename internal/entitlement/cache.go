package entitlement

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/nhle/sailcheck/internal/credential"
)

// Secrets is the subset of credential.Store the cache needs.
type Secrets interface {
	Get(key string) (string, error)
	Set(key string, value string) error
	Delete(key string) error
}

// Cache keeps the last known State in the keyring so the limit gate works
// offline.
type Cache struct {
	secrets Secrets
	now     func() time.Time
}

// NewCache returns a Cache stored in secrets.
func NewCache(secrets Secrets) *Cache {
	return &Cache{secrets: secrets, now: time.Now}
}

// Load returns the cached state, or nil when nothing has been cached.
func (c *Cache) Load() (*State, error) {
	raw, err := c.secrets.Get(credential.KeyEntitlements)
	if errors.Is(err, credential.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading entitlement state: %w", err)
	}

	var s State
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return nil, fmt.Errorf("decoding entitlement state: %w", err)
	}
	return &s, nil
}

// Save replaces the cached state and stamps its UpdatedAt.
func (c *Cache) Save(s State) (*State, error) {
	s.UpdatedAt = c.now()
	if s.ActiveEntitlements == nil {
		s.ActiveEntitlements = []string{}
	}

	raw, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encoding entitlement state: %w", err)
	}
	if err := c.secrets.Set(credential.KeyEntitlements, string(raw)); err != nil {
		return nil, fmt.Errorf("saving entitlement state: %w", err)
	}
	return &s, nil
}

// Activate adds ids to the cached active entitlements.
func (c *Cache) Activate(ids ...string) (*State, error) {
	current, err := c.Load()
	if err != nil {
		return nil, err
	}

	next := State{}
	if current != nil {
		next.ActiveEntitlements = slices.Clone(current.ActiveEntitlements)
	}
	for _, id := range ids {
		if id != "" && !slices.Contains(next.ActiveEntitlements, id) {
			next.ActiveEntitlements = append(next.ActiveEntitlements, id)
		}
	}
	slices.Sort(next.ActiveEntitlements)

	return c.Save(next)
}

// Clear forgets the cached state.
func (c *Cache) Clear() error {
	if err := c.secrets.Delete(credential.KeyEntitlements); err != nil {
		return fmt.Errorf("clearing entitlement state: %w", err)
	}
	return nil
}

// APIKey returns the provider API key from the environment variable
// envVar, falling back to the keyring. The empty string means none is set.
func (c *Cache) APIKey(envVar string) string {
	if envVar != "" {
		if v := os.Getenv(envVar); v != "" {
			return v
		}
	}
	v, err := c.secrets.Get(credential.KeyAPIKey)
	if err != nil {
		return ""
	}
	return v
}

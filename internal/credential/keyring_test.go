package credential

import (
	"testing"

	"github.com/99designs/keyring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreRoundTrip(t *testing.T) {
	s := NewStore(keyring.NewArrayKeyring(nil))

	_, err := s.Get(KeyAPIKey)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Set(KeyAPIKey, "sk_live_123"))
	got, err := s.Get(KeyAPIKey)
	require.NoError(t, err)
	assert.Equal(t, "sk_live_123", got)

	require.NoError(t, s.Delete(KeyAPIKey))
	_, err = s.Get(KeyAPIKey)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteMissingKey(t *testing.T) {
	s := NewStore(keyring.NewArrayKeyring(nil))
	assert.NoError(t, s.Delete("never-set"))
}

package testutil

import (
	"testing"

	"github.com/nhle/sailcheck/internal/kv"
)

// NewTestKV creates an in-memory SQLite key-value store with all
// migrations applied. It automatically closes the store when the test
// completes.
func NewTestKV(t *testing.T) *kv.SQLite {
	t.Helper()

	s, err := kv.NewSQLite(":memory:")
	if err != nil {
		t.Fatalf("creating test kv store: %v", err)
	}

	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing test kv store: %v", err)
		}
	})

	return s
}

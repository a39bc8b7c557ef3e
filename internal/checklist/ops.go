// Package checklist holds the pure operations on checklists and tasks:
// construction, partial updates with completion bookkeeping, and progress
// statistics. Nothing here validates user input; callers check that names
// and titles are non-empty before calling in.
package checklist

import (
	"time"

	"github.com/google/uuid"
)

// Clock returns the current time.
type Clock func() time.Time

// IDFunc returns a fresh unique identifier.
type IDFunc func() string

// Ops builds and updates entities using an injected clock and id source.
// The zero value uses time.Now and random UUIDs.
type Ops struct {
	Now   Clock
	NewID IDFunc
}

// Default is the Ops used by the package-level helpers.
var Default = Ops{}

// Time returns the current time from the injected clock.
func (o Ops) Time() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

func (o Ops) id() string {
	if o.NewID != nil {
		return o.NewID()
	}
	return uuid.New().String()
}

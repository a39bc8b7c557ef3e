// Package entitlement answers whether the user may create another
// checklist. Free users are capped at FreeLimit; any active entitlement
// lifts the cap. A nil *State means "not subscribed".
package entitlement

import (
	"slices"
	"strings"
	"time"
)

// FreeLimit is the number of checklists a free user may keep.
const FreeLimit = 3

// State is the last known subscription state.
type State struct {
	ActiveEntitlements []string  `json:"active_entitlements"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// HasActiveSubscription reports whether any entitlement is active.
func HasActiveSubscription(s *State) bool {
	return s != nil && len(s.ActiveEntitlements) > 0
}

// ActiveEntitlements returns the active entitlement ids, never nil.
func ActiveEntitlements(s *State) []string {
	if s == nil {
		return []string{}
	}
	return append([]string{}, s.ActiveEntitlements...)
}

// HasEntitlement reports whether id is among the active entitlements.
func HasEntitlement(s *State, id string) bool {
	if s == nil {
		return false
	}
	return slices.Contains(s.ActiveEntitlements, id)
}

// CanCreateChecklist reports whether a user holding s who already has
// count checklists may add one more.
func CanCreateChecklist(s *State, count int) bool {
	if HasActiveSubscription(s) {
		return true
	}
	return count < FreeLimit
}

// placeholderKeys are the values shipped in sample configuration files.
var placeholderKeys = []string{
	"your_api_key_here",
	"your_ios_api_key_here",
	"your_android_api_key_here",
}

// IsConfigured reports whether apiKey looks like a real provider key.
func IsConfigured(apiKey string) bool {
	key := strings.TrimSpace(apiKey)
	if key == "" {
		return false
	}
	return !slices.Contains(placeholderKeys, key)
}

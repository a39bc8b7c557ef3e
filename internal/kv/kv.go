// Package kv provides the synchronous key-value storage that application
// state is persisted through. Values are opaque strings; callers own the
// serialization format.
package kv

import "errors"

// ErrClosed is returned by stores used after Close.
var ErrClosed = errors.New("kv: store closed")

// KeyValueStore is a synchronous string blob store.
type KeyValueStore interface {
	// Get returns the value for key. ok is false when the key is absent.
	Get(key string) (value string, ok bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(key, value string) error

	// Remove deletes key. Removing an absent key is not an error.
	Remove(key string) error
}

// Lister is implemented by stores that can enumerate their keys.
type Lister interface {
	// Keys returns every stored key in lexical order.
	Keys() ([]string, error)
}

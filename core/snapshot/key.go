// ABOUTME: Canonical cache keys for dataset requests
// ABOUTME: Equal endpoint and encoded parameters always produce the same key

package snapshot

import (
	"crypto/sha1"
	"encoding/hex"
)

const keyPrefix = "snapshot:"

// Key identifies a dataset request
type Key struct {
	// Endpoint is the resource URL
	Endpoint string

	// Params is the canonically encoded query string
	Params string
}

// NewKey builds a key from an endpoint and an encoded query string
func NewKey(endpoint, params string) Key {
	return Key{Endpoint: endpoint, Params: params}
}

// Canonical returns the stable textual form of the key
func (k Key) Canonical() string {
	if k.Params == "" {
		return k.Endpoint
	}
	return k.Endpoint + "?" + k.Params
}

// ID returns the backend storage key
func (k Key) ID() string {
	sum := sha1.Sum([]byte(k.Canonical()))
	return keyPrefix + hex.EncodeToString(sum[:])
}

// String implements fmt.Stringer
func (k Key) String() string {
	return k.Canonical()
}

package service

import (
	"context"
	"errors"
	"time"
)

// ErrKeyNotFound is returned by Get when the key is absent or expired.
var ErrKeyNotFound = errors.New("key not found")

// KeyValueStore is the shared expiring store behind OTP challenges and the revocation ledger.
// All cross-request coordination relies on the atomicity of these primitives.
type KeyValueStore interface {
	// SetWithTTL stores value under key. A ttl <= 0 stores the key without expiry.
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Get returns the value stored under key or ErrKeyNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Delete removes key and reports whether this call removed it.
	// Exactly one of several racing callers observes true.
	Delete(ctx context.Context, key string) (bool, error)

	// Exists reports whether key is present.
	Exists(ctx context.Context, key string) (bool, error)
}

package impl

import (
	"context"
	"time"

	"tracker/internal/domain/service"
	"tracker/internal/usecase"
)

const (
	revocationKeyPrefix = "blacklist:"
	revocationValue     = "true"

	// minRevocationTTL keeps tokens that expire during the call from being stored without expiry.
	minRevocationTTL = time.Second
)

type revocationLedger struct {
	store service.KeyValueStore
	codec service.TokenCodec
	now   func() time.Time
}

// NewRevocationLedger creates the token blacklist.
func NewRevocationLedger(store service.KeyValueStore, codec service.TokenCodec) usecase.RevocationLedger {
	return newRevocationLedger(store, codec)
}

func newRevocationLedger(store service.KeyValueStore, codec service.TokenCodec) *revocationLedger {
	return &revocationLedger{
		store: store,
		codec: codec,
		now:   time.Now,
	}
}

// Blacklist stores the token until its natural expiry. Tokens whose signature cannot be
// verified are stored without expiry.
func (l *revocationLedger) Blacklist(ctx context.Context, token string) error {
	var ttl time.Duration
	if claims, err := l.codec.Inspect(token); err == nil {
		ttl = max(claims.ExpiresAt.Sub(l.now()), minRevocationTTL)
	}

	if err := l.store.SetWithTTL(ctx, revocationKey(token), []byte(revocationValue), ttl); err != nil {
		return storeUnavailable(err)
	}

	return nil
}

// IsBlacklisted reports whether the exact token string was revoked.
func (l *revocationLedger) IsBlacklisted(ctx context.Context, token string) (bool, error) {
	exists, err := l.store.Exists(ctx, revocationKey(token))
	if err != nil {
		return false, storeUnavailable(err)
	}

	return exists, nil
}

func revocationKey(token string) string {
	return revocationKeyPrefix + token
}

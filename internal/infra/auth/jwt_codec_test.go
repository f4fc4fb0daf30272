package auth

import (
	"strings"
	"testing"
	"time"

	"tracker/config"
	"tracker/internal/domain/entity"
	"tracker/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_signing_secret_key_very_long_for_testing"

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time {
	return c.now
}

func newTestCodec(t *testing.T, clock *testClock) service.TokenCodec {
	t.Helper()

	codec, err := NewJWTCodecWithClock(testSecret, config.AlgorithmHS256, clock.Now)
	require.NoError(t, err)

	return codec
}

func testClaims(now time.Time, ttl time.Duration, kind entity.TokenKind) entity.TokenClaims {
	return entity.TokenClaims{
		ID:        "jti-1",
		Subject:   42,
		Role:      entity.RoleDeveloper,
		IssuedAt:  now,
		ExpiresAt: now.Add(ttl),
		Kind:      kind,
	}
}

func TestJWTCodec_RoundTrip(t *testing.T) {
	clock := &testClock{now: time.Unix(1_700_000_000, 0)}
	codec := newTestCodec(t, clock)

	token, err := codec.Encode(testClaims(clock.now, 15*time.Minute, entity.TokenKindAccess))
	require.NoError(t, err)
	assert.Len(t, strings.Split(token, "."), 3)

	claims, err := codec.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, "jti-1", claims.ID)
	assert.Equal(t, int64(42), claims.Subject)
	assert.Equal(t, entity.RoleDeveloper, claims.Role)
	assert.Equal(t, entity.TokenKindAccess, claims.Kind)
	assert.True(t, claims.IssuedAt.Equal(clock.now))
	assert.True(t, claims.ExpiresAt.Equal(clock.now.Add(15*time.Minute)))
}

func TestJWTCodec_ExpiredTokenFailsWithExpired(t *testing.T) {
	clock := &testClock{now: time.Unix(1_700_000_000, 0)}
	codec := newTestCodec(t, clock)

	token, err := codec.Encode(testClaims(clock.now, time.Minute, entity.TokenKindAccess))
	require.NoError(t, err)

	for _, offset := range []time.Duration{time.Minute, time.Minute + time.Second, time.Hour} {
		clock.now = time.Unix(1_700_000_000, 0).Add(offset)

		claims, err := codec.Decode(token)
		assert.Nil(t, claims)
		assert.True(t, errors.Is(err, service.ErrTokenExpired), "offset %s", offset)
	}
}

func TestJWTCodec_TokenIssuedAlreadyExpired(t *testing.T) {
	clock := &testClock{now: time.Unix(1_700_000_000, 0)}
	codec := newTestCodec(t, clock)

	token, err := codec.Encode(testClaims(clock.now, -time.Second, entity.TokenKindAccess))
	require.NoError(t, err)

	_, err = codec.Decode(token)
	assert.True(t, errors.Is(err, service.ErrTokenExpired))
}

func TestJWTCodec_MalformedTokens(t *testing.T) {
	clock := &testClock{now: time.Unix(1_700_000_000, 0)}
	codec := newTestCodec(t, clock)

	valid, err := codec.Encode(testClaims(clock.now, time.Minute, entity.TokenKindAccess))
	require.NoError(t, err)

	otherSecret, err := NewJWTCodecWithClock("another_secret", config.AlgorithmHS256, clock.Now)
	require.NoError(t, err)
	foreign, err := otherSecret.Encode(testClaims(clock.now, time.Minute, entity.TokenKindAccess))
	require.NoError(t, err)

	otherAlg, err := NewJWTCodecWithClock(testSecret, config.AlgorithmHS512, clock.Now)
	require.NoError(t, err)
	wrongAlg, err := otherAlg.Encode(testClaims(clock.now, time.Minute, entity.TokenKindAccess))
	require.NoError(t, err)

	parts := strings.Split(valid, ".")
	tampered := parts[0] + "." + parts[1] + "x." + parts[2]

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": "42", "type": "access", "exp": clock.now.Add(time.Minute).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	nonNumericSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "alice", "type": "access", "exp": clock.now.Add(time.Minute).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	missingExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "42", "type": "access",
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	tests := map[string]string{
		"garbage":             "clearly-not-a-jwt-token-format",
		"empty":               "",
		"foreign secret":      foreign,
		"different algorithm": wrongAlg,
		"tampered payload":    tampered,
		"alg none":            unsigned,
		"non numeric subject": nonNumericSubject,
		"missing expiry":      missingExpiry,
	}

	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			claims, err := codec.Decode(token)
			assert.Nil(t, claims)
			assert.True(t, errors.Is(err, service.ErrTokenMalformed), "got %v", err)
		})
	}
}

func TestJWTCodec_ExpiredForeignTokenIsMalformed(t *testing.T) {
	clock := &testClock{now: time.Unix(1_700_000_000, 0)}
	codec := newTestCodec(t, clock)

	other, err := NewJWTCodecWithClock("another_secret", config.AlgorithmHS256, clock.Now)
	require.NoError(t, err)
	foreign, err := other.Encode(testClaims(clock.now, -time.Hour, entity.TokenKindAccess))
	require.NoError(t, err)

	_, err = codec.Decode(foreign)
	assert.True(t, errors.Is(err, service.ErrTokenMalformed))
	assert.False(t, errors.Is(err, service.ErrTokenExpired))
}

func TestJWTCodec_InspectIgnoresExpiryButNotSignature(t *testing.T) {
	clock := &testClock{now: time.Unix(1_700_000_000, 0)}
	codec := newTestCodec(t, clock)

	token, err := codec.Encode(testClaims(clock.now, time.Minute, entity.TokenKindRefresh))
	require.NoError(t, err)

	clock.now = clock.now.Add(time.Hour)

	claims, err := codec.Inspect(token)
	require.NoError(t, err)
	assert.Equal(t, entity.TokenKindRefresh, claims.Kind)
	assert.True(t, claims.ExpiresAt.Before(clock.now))

	parts := strings.Split(token, ".")
	_, err = codec.Inspect(parts[0] + "." + parts[1] + ".AAAA")
	assert.True(t, errors.Is(err, service.ErrTokenMalformed))
}

func TestNewJWTCodec_Validation(t *testing.T) {
	_, err := NewJWTCodecWithClock("", config.AlgorithmHS256, time.Now)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jwt secret must be provided")

	_, err = NewJWTCodecWithClock(testSecret, "RS256", time.Now)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported signing algorithm")

	cfg := &config.Config{}
	cfg.JWT.Secret = testSecret
	cfg.JWT.Algorithm = config.AlgorithmHS384
	codec, err := NewJWTCodec(cfg)
	require.NoError(t, err)
	assert.NotNil(t, codec)
}

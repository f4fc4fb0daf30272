package impl

import (
	"testing"
	"time"

	"tracker/config"
	"tracker/internal/domain/entity"
	mockService "tracker/internal/mocks/service"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSessionIssuer_Issue(t *testing.T) {
	clock := newTestClock()
	codec := mockService.NewMockTokenCodec(t)
	issuer := newSessionIssuer(codec, 15*time.Minute, 24*time.Hour)
	issuer.now = clock.Now

	user := &entity.User{ID: 3, Groups: []string{"Tester", "Project Manager"}}

	var encoded []entity.TokenClaims
	codec.EXPECT().Encode(mock.Anything).RunAndReturn(func(claims entity.TokenClaims) (string, error) {
		encoded = append(encoded, claims)

		return string(claims.Kind) + "-token", nil
	}).Twice()

	pair, err := issuer.Issue(user)
	require.NoError(t, err)
	assert.Equal(t, "access-token", pair.AccessToken)
	assert.Equal(t, "refresh-token", pair.RefreshToken)

	require.Len(t, encoded, 2)
	access, refresh := encoded[0], encoded[1]

	assert.Equal(t, entity.TokenKindAccess, access.Kind)
	assert.Equal(t, entity.TokenKindRefresh, refresh.Kind)
	for _, claims := range encoded {
		assert.Equal(t, int64(3), claims.Subject)
		assert.Equal(t, entity.RoleProjectManager, claims.Role)
		assert.Equal(t, clock.Now(), claims.IssuedAt)
		assert.NotEmpty(t, claims.ID)
	}
	assert.Equal(t, clock.Now().Add(15*time.Minute), access.ExpiresAt)
	assert.Equal(t, clock.Now().Add(24*time.Hour), refresh.ExpiresAt)
	assert.NotEqual(t, access.ID, refresh.ID)
}

func TestSessionIssuer_IssueAccess(t *testing.T) {
	clock := newTestClock()
	codec := mockService.NewMockTokenCodec(t)
	issuer := newSessionIssuer(codec, time.Minute, time.Hour)
	issuer.now = clock.Now

	codec.EXPECT().Encode(mock.MatchedBy(func(claims entity.TokenClaims) bool {
		return claims.Kind == entity.TokenKindAccess &&
			claims.Subject == 5 &&
			claims.Role == entity.RoleNone &&
			claims.ExpiresAt.Equal(clock.Now().Add(time.Minute))
	})).Return("access", nil)

	token, err := issuer.IssueAccess(5, entity.RoleNone)
	require.NoError(t, err)
	assert.Equal(t, "access", token)
}

func TestSessionIssuer_EncodeFailure(t *testing.T) {
	codec := mockService.NewMockTokenCodec(t)
	issuer := newSessionIssuer(codec, time.Minute, time.Hour)

	codec.EXPECT().Encode(mock.Anything).Return("", errors.New("signing failed"))

	_, err := issuer.Issue(&entity.User{ID: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to issue access token")
}

func TestNewSessionIssuer_ReadsLifetimes(t *testing.T) {
	cfg := newTestConfig(config.RefreshRoleCarry)
	codec := mockService.NewMockTokenCodec(t)

	issuer := NewSessionIssuer(SessionIssuerParams{Codec: codec, Config: cfg, Logger: newDiscardLogger()}).(*sessionIssuer)
	assert.Equal(t, 15*time.Minute, issuer.accessTTL)
	assert.Equal(t, 24*time.Hour, issuer.refreshTTL)
}

package impl

import (
	"context"
	"testing"

	"tracker/internal/domain/entity"
	domainerrors "tracker/internal/domain/errors"
	"tracker/internal/domain/repository"
	mockRepo "tracker/internal/mocks/repository"
	mockService "tracker/internal/mocks/service"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentialVerifier_Success(t *testing.T) {
	userRepo := mockRepo.NewMockUserRepository(t)
	hasher := mockService.NewMockPasswordHasher(t)
	verifier := NewCredentialVerifier(userRepo, hasher, newDiscardLogger())
	ctx := context.Background()

	user := &entity.User{ID: 1, Username: "alice", IsActive: true}
	userRepo.EXPECT().FindCredential(ctx, "alice").Return(&entity.Credential{User: user, PasswordHash: "hash"}, nil)
	hasher.EXPECT().Check("correct", "hash").Return(true)

	got, err := verifier.VerifyCredentials(ctx, "alice", "correct")
	require.NoError(t, err)
	assert.Same(t, user, got)
}

func TestCredentialVerifier_Rejections(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown user still hashes", func(t *testing.T) {
		userRepo := mockRepo.NewMockUserRepository(t)
		hasher := mockService.NewMockPasswordHasher(t)
		verifier := NewCredentialVerifier(userRepo, hasher, newDiscardLogger())

		userRepo.EXPECT().FindCredential(ctx, "ghost").Return(nil, repository.ErrUserNotFound)
		hasher.EXPECT().Hash(dummyPassword).Return("dummy-hash", nil).Once()
		hasher.EXPECT().Check("pw", "dummy-hash").Return(false)

		_, err := verifier.VerifyCredentials(ctx, "ghost", "pw")
		assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
	})

	t.Run("wrong password", func(t *testing.T) {
		userRepo := mockRepo.NewMockUserRepository(t)
		hasher := mockService.NewMockPasswordHasher(t)
		verifier := NewCredentialVerifier(userRepo, hasher, newDiscardLogger())

		userRepo.EXPECT().FindCredential(ctx, "alice").Return(&entity.Credential{User: &entity.User{IsActive: true}, PasswordHash: "hash"}, nil)
		hasher.EXPECT().Check("wrong", "hash").Return(false)

		_, err := verifier.VerifyCredentials(ctx, "alice", "wrong")
		assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
	})

	t.Run("inactive user", func(t *testing.T) {
		userRepo := mockRepo.NewMockUserRepository(t)
		hasher := mockService.NewMockPasswordHasher(t)
		verifier := NewCredentialVerifier(userRepo, hasher, newDiscardLogger())

		userRepo.EXPECT().FindCredential(ctx, "bob").Return(&entity.Credential{User: &entity.User{ID: 2, IsActive: false}, PasswordHash: "hash"}, nil)
		hasher.EXPECT().Check("correct", "hash").Return(true)

		_, err := verifier.VerifyCredentials(ctx, "bob", "correct")
		assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
	})

	t.Run("directory failure is not a credential error", func(t *testing.T) {
		userRepo := mockRepo.NewMockUserRepository(t)
		hasher := mockService.NewMockPasswordHasher(t)
		verifier := NewCredentialVerifier(userRepo, hasher, newDiscardLogger())

		userRepo.EXPECT().FindCredential(ctx, "alice").Return(nil, errors.New("connection reset"))

		_, err := verifier.VerifyCredentials(ctx, "alice", "pw")
		require.Error(t, err)
		assert.False(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
	})
}

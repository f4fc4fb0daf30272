package impl

import (
	"context"
	"log/slog"
	"sync"

	deliverycontext "tracker/internal/delivery/context"
	"tracker/internal/domain/entity"
	domainerrors "tracker/internal/domain/errors"
	"tracker/internal/domain/repository"
	"tracker/internal/domain/service"
	"tracker/internal/usecase"

	"github.com/pkg/errors"
)

const dummyPassword = "tracker-timing-equalizer"

type credentialVerifier struct {
	userRepo repository.UserRepository
	hasher   service.PasswordHasher
	logger   *slog.Logger

	dummyOnce sync.Once
	dummyHash string
}

// NewCredentialVerifier creates the password check of the login step.
func NewCredentialVerifier(userRepo repository.UserRepository, hasher service.PasswordHasher, logger *slog.Logger) usecase.CredentialVerifier {
	return &credentialVerifier{
		userRepo: userRepo,
		hasher:   hasher,
		logger:   logger,
	}
}

func (v *credentialVerifier) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, v.logger)
}

func (v *credentialVerifier) VerifyCredentials(ctx context.Context, username, password string) (*entity.User, error) {
	credential, err := v.userRepo.FindCredential(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			// Unknown usernames still pay for one hash comparison.
			v.hasher.Check(password, v.timingHash())

			return nil, domainerrors.ErrInvalidCredentials
		}

		return nil, errors.Wrap(err, "failed to load credentials")
	}

	if !v.hasher.Check(password, credential.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}

	if !credential.User.IsActive {
		v.log(ctx).Info("Rejected login of inactive user", slog.Int64("user_id", credential.User.ID))

		return nil, domainerrors.ErrInvalidCredentials
	}

	return credential.User, nil
}

func (v *credentialVerifier) timingHash() string {
	v.dummyOnce.Do(func() {
		hash, err := v.hasher.Hash(dummyPassword)
		if err != nil {
			v.logger.Warn("Failed to prepare timing hash", slog.Any("error", err))

			return
		}
		v.dummyHash = hash
	})

	return v.dummyHash
}

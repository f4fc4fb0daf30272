package impl

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"math/big"
	"strconv"
	"time"

	"tracker/config"
	deliverycontext "tracker/internal/delivery/context"
	"tracker/internal/domain/entity"
	domainerrors "tracker/internal/domain/errors"
	"tracker/internal/domain/service"
	"tracker/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	challengeKeyPrefix = "otp:"
	handleBytes        = 32
	codeFloor          = 100000
	codeSpan           = 900000
)

// challengeRecord is the stored form of a pending login.
type challengeRecord struct {
	UserID    int64     `json:"user_id"`
	OTP       string    `json:"otp"`
	ExpiresAt time.Time `json:"expires_at"`
}

type challengeManager struct {
	store  service.KeyValueStore
	ttl    time.Duration
	now    func() time.Time
	logger *slog.Logger
}

// ChallengeManagerParams holds dependencies for ChallengeManager, injected by Fx.
type ChallengeManagerParams struct {
	fx.In

	Store  service.KeyValueStore
	Config *config.Config
	Logger *slog.Logger
}

// NewChallengeManager creates the OTP challenge manager.
func NewChallengeManager(params ChallengeManagerParams) usecase.ChallengeManager {
	return newChallengeManager(params.Store, params.Config.OTP.TTL, params.Logger)
}

func newChallengeManager(store service.KeyValueStore, ttl time.Duration, logger *slog.Logger) *challengeManager {
	return &challengeManager{
		store:  store,
		ttl:    ttl,
		now:    time.Now,
		logger: logger,
	}
}

func (m *challengeManager) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, m.logger)
}

// CreateChallenge stores a pending login under a fresh random handle.
func (m *challengeManager) CreateChallenge(ctx context.Context, userID int64) (*entity.PendingLogin, error) {
	handle, err := newHandle()
	if err != nil {
		return nil, err
	}

	code, err := newCode()
	if err != nil {
		return nil, err
	}

	now := m.now()
	pending := &entity.PendingLogin{
		Handle:    handle,
		UserID:    userID,
		Code:      code,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}

	data, err := json.Marshal(challengeRecord{
		UserID:    userID,
		OTP:       code,
		ExpiresAt: pending.ExpiresAt,
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if err := m.store.SetWithTTL(ctx, challengeKey(handle), data, m.ttl); err != nil {
		return nil, storeUnavailable(err)
	}

	return pending, nil
}

// ValidateChallenge checks code against the stored challenge and consumes it on success.
func (m *challengeManager) ValidateChallenge(ctx context.Context, handle, code string) (int64, error) {
	if handle == "" {
		return 0, domainerrors.ErrChallengeNotFound
	}

	key := challengeKey(handle)

	data, err := m.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, service.ErrKeyNotFound) {
			return 0, domainerrors.ErrChallengeNotFound
		}

		return 0, storeUnavailable(err)
	}

	var record challengeRecord
	if err := json.Unmarshal(data, &record); err != nil {
		m.log(ctx).Warn("Discarding unreadable OTP challenge", slog.Any("error", err))
		if _, delErr := m.store.Delete(ctx, key); delErr != nil {
			return 0, storeUnavailable(delErr)
		}

		return 0, domainerrors.ErrChallengeNotFound
	}

	if !m.now().Before(record.ExpiresAt) {
		if _, err := m.store.Delete(ctx, key); err != nil {
			return 0, storeUnavailable(err)
		}

		return 0, domainerrors.ErrChallengeNotFound
	}

	if subtle.ConstantTimeCompare([]byte(code), []byte(record.OTP)) != 1 {
		return 0, domainerrors.ErrCodeMismatch
	}

	// Only the caller whose delete removed the key may proceed.
	removed, err := m.store.Delete(ctx, key)
	if err != nil {
		return 0, storeUnavailable(err)
	}
	if !removed {
		return 0, domainerrors.ErrChallengeNotFound
	}

	return record.UserID, nil
}

func challengeKey(handle string) string {
	return challengeKeyPrefix + handle
}

func newHandle() (string, error) {
	buf := make([]byte, handleBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.Wrap(err, "failed to generate challenge handle")
	}

	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// newCode returns a uniformly random six digit code in [100000, 999999].
func newCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeSpan))
	if err != nil {
		return "", errors.Wrap(err, "failed to generate passcode")
	}

	return strconv.FormatInt(n.Int64()+codeFloor, 10), nil
}

package impl

import (
	"log/slog"
	"time"

	"tracker/config"
	"tracker/internal/domain/entity"
	"tracker/internal/domain/service"
	"tracker/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type sessionIssuer struct {
	codec      service.TokenCodec
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// SessionIssuerParams holds dependencies for SessionIssuer, injected by Fx.
type SessionIssuerParams struct {
	fx.In

	Codec  service.TokenCodec
	Config *config.Config
	Logger *slog.Logger
}

// NewSessionIssuer creates the token issuer from the jwt lifetimes.
func NewSessionIssuer(params SessionIssuerParams) usecase.SessionIssuer {
	accessTTL, refreshTTL := params.Config.JWT.AccessTTL, params.Config.JWT.RefreshTTL
	if refreshTTL <= accessTTL {
		params.Logger.Warn("Refresh token lifetime does not exceed access token lifetime",
			slog.Duration("access_ttl", accessTTL),
			slog.Duration("refresh_ttl", refreshTTL),
		)
	}

	return newSessionIssuer(params.Codec, accessTTL, refreshTTL)
}

func newSessionIssuer(codec service.TokenCodec, accessTTL, refreshTTL time.Duration) *sessionIssuer {
	return &sessionIssuer{
		codec:      codec,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

// Issue mints both tokens from one role computation and one clock reading.
func (s *sessionIssuer) Issue(user *entity.User) (*entity.TokenPair, error) {
	role := user.Role()
	now := s.now()

	access, err := s.encode(user.ID, role, entity.TokenKindAccess, now, s.accessTTL)
	if err != nil {
		return nil, err
	}

	refresh, err := s.encode(user.ID, role, entity.TokenKindRefresh, now, s.refreshTTL)
	if err != nil {
		return nil, err
	}

	return &entity.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *sessionIssuer) IssueAccess(userID int64, role entity.Role) (string, error) {
	return s.encode(userID, role, entity.TokenKindAccess, s.now(), s.accessTTL)
}

func (s *sessionIssuer) encode(userID int64, role entity.Role, kind entity.TokenKind, now time.Time, ttl time.Duration) (string, error) {
	token, err := s.codec.Encode(entity.TokenClaims{
		ID:        uuid.NewString(),
		Subject:   userID,
		Role:      role,
		IssuedAt:  now,
		ExpiresAt: now.Add(ttl),
		Kind:      kind,
	})
	if err != nil {
		return "", errors.Wrapf(err, "failed to issue %s token", kind)
	}

	return token, nil
}

package usecase

import (
	"context"

	"tracker/internal/domain/entity"
)

// CredentialVerifier checks a username and password against the user directory.
type CredentialVerifier interface {
	// VerifyCredentials returns ErrInvalidCredentials for an unknown user, an inactive user, or a wrong password.
	VerifyCredentials(ctx context.Context, username, password string) (*entity.User, error)
}

// ChallengeManager owns the pending OTP challenges.
type ChallengeManager interface {
	// CreateChallenge stores a new pending login for the user.
	CreateChallenge(ctx context.Context, userID int64) (*entity.PendingLogin, error)

	// ValidateChallenge consumes the handle when code matches and returns its owner.
	// At most one caller ever succeeds for a given handle.
	ValidateChallenge(ctx context.Context, handle, code string) (int64, error)
}

// RevocationLedger records tokens that must no longer be honoured.
type RevocationLedger interface {
	Blacklist(ctx context.Context, token string) error
	IsBlacklisted(ctx context.Context, token string) (bool, error)
}

// SessionIssuer mints signed tokens. It has no storage side effects.
type SessionIssuer interface {
	// Issue mints an access and refresh pair carrying the user's effective role.
	Issue(user *entity.User) (*entity.TokenPair, error)

	// IssueAccess mints a lone access token.
	IssueAccess(userID int64, role entity.Role) (string, error)
}

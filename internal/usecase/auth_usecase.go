// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"tracker/internal/domain/entity"
)

// --- Input DTOs ---

// LoginInput defines the password step of a login.
type LoginInput struct {
	Username string
	Password string
}

// VerifyOTPInput defines the passcode step of a login.
type VerifyOTPInput struct {
	TempToken string
	OTP       string
}

// RefreshInput carries the refresh token and the Authorization header of the current access session.
type RefreshInput struct {
	RefreshToken        string
	AuthorizationHeader string
}

// LogoutInput carries the refresh token of the session an admitted caller is closing.
type LogoutInput struct {
	Principal    *entity.Principal
	RefreshToken string
}

// --- Output DTOs ---

// LoginOutput returns the handle of the pending OTP challenge.
type LoginOutput struct {
	TempToken string
}

// VerifyOTPOutput returns the authenticated user and the new session tokens.
type VerifyOTPOutput struct {
	User   *entity.User
	Tokens *entity.TokenPair
}

// RefreshOutput returns the replacement access token.
type RefreshOutput struct {
	AccessToken string
}

// AuthUsecase drives the login state machine and the token lifecycle.
type AuthUsecase interface {
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)
	VerifyOTP(ctx context.Context, input *VerifyOTPInput) (*VerifyOTPOutput, error)
	Refresh(ctx context.Context, input *RefreshInput) (*RefreshOutput, error)
	Logout(ctx context.Context, input *LogoutInput) error

	// Authorize is the request gate. An empty allowed set admits every role.
	Authorize(ctx context.Context, authorizationHeader string, allowed ...entity.Role) (*entity.Principal, error)
}

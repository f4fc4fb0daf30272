package usecase

import (
	"context"

	"tracker/internal/domain/entity"
)

// RegisterUserInput defines the data required to create an account.
type RegisterUserInput struct {
	Username    string
	Password    string
	Email       string
	FirstName   string
	LastName    string
	Gender      *entity.Gender
	PhoneNumber string
	IsStaff     bool
	Groups      []string
}

// CreateUserInput is an account created by an administrator. The email doubles as username
// and the password is generated.
type CreateUserInput struct {
	Email       string
	FirstName   string
	LastName    string
	Gender      *entity.Gender
	PhoneNumber string
	Role        string
}

// CreateUserOutput carries the new account and its one-time visible password.
type CreateUserOutput struct {
	User              *entity.User
	GeneratedPassword string
}

// UserUsecase defines the account operations that sit next to authentication.
type UserUsecase interface {
	// GetProfile returns the account of an admitted caller.
	GetProfile(ctx context.Context, userID int64) (*entity.User, error)

	// RegisterUser creates an account and its group memberships in one transaction.
	RegisterUser(ctx context.Context, input *RegisterUserInput) (*entity.User, error)

	// ListUsers returns the whole user directory.
	ListUsers(ctx context.Context) ([]*entity.User, error)

	// GetUser returns a single account by ID.
	GetUser(ctx context.Context, userID int64) (*entity.User, error)

	// CreateUser registers an account with a generated password and exactly one existing role.
	CreateUser(ctx context.Context, input *CreateUserInput) (*CreateUserOutput, error)

	// DeleteUser removes an account and its memberships.
	DeleteUser(ctx context.Context, userID int64) error
}

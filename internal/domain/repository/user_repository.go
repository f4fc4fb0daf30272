// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"tracker/internal/domain/entity"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// UserRepository is the user directory consumed by authentication.
type UserRepository interface {
	// FindByID retrieves a single user by their numeric ID, groups included.
	FindByID(ctx context.Context, id int64) (*entity.User, error)

	// FindByUsername retrieves a single user by their unique username, groups included.
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// FindCredential returns the user together with the stored password hash.
	FindCredential(ctx context.Context, username string) (*entity.Credential, error)

	// Create persists a new user with an already hashed password. The generated ID is set on user.
	Create(ctx context.Context, user *entity.User, passwordHash string) error

	// EnsureGroups creates the named groups that do not exist yet.
	EnsureGroups(ctx context.Context, names []string) error

	// AssignGroups replaces the user's group memberships with the named groups.
	// A name listed more than once is assigned once.
	AssignGroups(ctx context.Context, userID int64, names []string) error

	// List returns every user ordered by ID, groups included.
	List(ctx context.Context) ([]*entity.User, error)

	// Delete removes a user and its memberships. ErrUserNotFound when no row matched.
	Delete(ctx context.Context, id int64) error

	// GroupExists reports whether a group with that name exists.
	GroupExists(ctx context.Context, name string) (bool, error)
}

// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"
)

// Gender is the optional gender marker stored on a user.
type Gender string

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
)

// IsValid checks if the Gender is a valid value.
func (g Gender) IsValid() bool {
	switch g {
	case GenderMale, GenderFemale:
		return true
	default:
		return false
	}
}

// User is a snapshot of an account in the user directory.
// Authentication reads it and never mutates it.
type User struct {
	ID          int64    // Numeric primary key.
	Username    string   // Unique login name.
	Email       string   // Contact email.
	FirstName   string   // Display first name.
	LastName    string   // Display last name.
	Gender      *Gender  // Nil when not provided.
	PhoneNumber string   // Contact phone number.
	IsStaff     bool     // Staff flag.
	IsActive    bool     // Inactive users cannot log in.
	Groups      []string // Group names in assignment order.
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Role returns the effective role computed from the user's current groups.
func (u *User) Role() Role {
	return EffectiveRole(u.Groups)
}

// Credential couples a user with the stored password hash.
type Credential struct {
	User         *User
	PasswordHash string
}

// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"
)

// TokenKind discriminates what a signed token may be used for.
type TokenKind string

const (
	TokenKindAccess  TokenKind = "access"
	TokenKindRefresh TokenKind = "refresh"
	TokenKindTemp    TokenKind = "temp"
)

// IsValid checks if the TokenKind is a valid value.
func (k TokenKind) IsValid() bool {
	switch k {
	case TokenKindAccess, TokenKindRefresh, TokenKindTemp:
		return true
	default:
		return false
	}
}

// TokenClaims is the payload embedded in access and refresh tokens.
// Tokens are signed, not encrypted, so nothing beyond the subject and role belongs here.
type TokenClaims struct {
	ID        string    // jti; keeps tokens minted in the same second distinct.
	Subject   int64     // User ID the token was issued to.
	Role      Role      // Role snapshot taken at issuance.
	IssuedAt  time.Time // iat
	ExpiresAt time.Time // exp
	Kind      TokenKind // type
}

// PendingLogin is a password check awaiting OTP confirmation.
type PendingLogin struct {
	Handle    string    // Opaque, unguessable temp token returned to the client.
	UserID    int64     // Owner of the pending login.
	Code      string    // Six-digit passcode delivered out of band.
	CreatedAt time.Time // When the challenge was stored.
	ExpiresAt time.Time // CreatedAt plus the challenge TTL.
}

// TokenPair is the result of a completed login.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// Principal is the identity admitted by the request gate.
// It is built from signed claims only, never from the user directory.
type Principal struct {
	UserID      int64
	Role        Role
	AccessToken string
}

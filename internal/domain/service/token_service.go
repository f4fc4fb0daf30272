package service

import (
	"errors"

	"tracker/internal/domain/entity"
)

var (
	// ErrTokenExpired is returned for a correctly signed token whose exp has passed.
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenMalformed is returned for a token that is unparseable or carries an invalid signature.
	ErrTokenMalformed = errors.New("token malformed")
)

// TokenCodec encodes and decodes signed, expiring tokens.
type TokenCodec interface {
	// Encode signs the claims with the process-wide secret.
	Encode(claims entity.TokenClaims) (string, error)

	// Decode verifies signature and expiry. It never returns claims together with an error.
	Decode(token string) (*entity.TokenClaims, error)

	// Inspect verifies the signature but not the expiry.
	// It is used to learn the remaining lifetime of tokens that are about to be revoked.
	Inspect(token string) (*entity.TokenClaims, error)
}

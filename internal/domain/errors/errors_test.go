package errors

import (
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestBaseError_WithMessageKeepsIdentity(t *testing.T) {
	variant := ErrWrongTokenKind.WithMessage("Error : Token is not a refresh token")

	assert.True(t, errors.Is(variant, ErrWrongTokenKind))
	assert.False(t, errors.Is(variant, ErrTokenMalformed))
	assert.Equal(t, http.StatusUnauthorized, variant.HTTPCode())
	assert.Equal(t, "Error : Token is not a refresh token", variant.Message())
	assert.Equal(t, "Error: Token is not an access token", ErrWrongTokenKind.Message())
}

func TestBaseError_WrappedStillMatches(t *testing.T) {
	err := ErrStoreUnavailable.WrapMessage("redis: connection refused")

	assert.True(t, errors.Is(err, ErrStoreUnavailable))

	var appErr AppError
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusServiceUnavailable, appErr.HTTPCode())
}

func TestChallengeErrorsAreIndistinguishableToCallers(t *testing.T) {
	assert.Equal(t, ErrChallengeNotFound.Message(), ErrCodeMismatch.Message())
	assert.Equal(t, ErrChallengeNotFound.HTTPCode(), ErrCodeMismatch.HTTPCode())
	assert.False(t, errors.Is(ErrCodeMismatch, ErrChallengeNotFound))
}

func TestCode(t *testing.T) {
	assert.Equal(t, "TOKEN_REVOKED", Code(errors.Wrap(ErrTokenRevoked, "gate")))
	assert.Equal(t, "INTERNAL_ERROR", Code(errors.New("boom")))
	assert.Equal(t, "DATABASE_EXECUTE_FAILED", Code(NewDatabaseExecuteError(errors.New("boom"), "")))
}

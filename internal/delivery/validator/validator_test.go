package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Code  string `json:"otp" validate:"required,len=6,numeric"`
	Email string `json:"email,omitempty" validate:"omitempty,email"`
}

func TestValidator(t *testing.T) {
	v := New()

	require.NoError(t, v.Validate(&sample{Code: "123456"}))

	err := v.Validate(&sample{Code: "12a"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "'otp'")

	err = v.Validate(&sample{Code: "123456", Email: "nope"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "'email'")
}

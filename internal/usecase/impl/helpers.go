// Package impl contains the implementation of the application's business logic.
package impl

import (
	"strings"

	domainerrors "tracker/internal/domain/errors"

	"github.com/pkg/errors"
)

const bearerPrefix = "Bearer "

// bearerToken extracts the token of an "Authorization: Bearer <token>" header.
func bearerToken(header string) (string, bool) {
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", false
	}

	token := strings.TrimSpace(header[len(bearerPrefix):])

	return token, token != ""
}

// storeUnavailable converts a key-value store failure into a fail-closed rejection.
func storeUnavailable(err error) error {
	return errors.Wrap(domainerrors.ErrStoreUnavailable, err.Error())
}

// Package handler contains the echo handlers of the API server.
package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"slices"
	"strings"

	domainerrors "tracker/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// bindStringPayload reads a JSON object whose keys are exactly the given string fields.
// Rejections follow a fixed order: unparsable body, empty payload, missing keys,
// unexpected keys, then wrongly typed values.
func bindStringPayload(c echo.Context, keys ...string) (map[string]string, error) {
	values, err := bindPayload(c, keys, nil)
	if err != nil {
		return nil, err
	}

	result := make(map[string]string, len(values))
	for key, value := range values {
		result[key] = *value
	}

	return result, nil
}

// bindPayload is bindStringPayload where the nullable keys also accept a JSON null,
// returned as a nil value.
func bindPayload(c echo.Context, keys, nullable []string) (map[string]*string, error) {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	var payload any
	if err := decodeStrict(body, &payload); err != nil {
		return nil, domainerrors.ErrMalformedPayload
	}

	if isEmptyPayload(payload) {
		return nil, malformed("Error: Payload cannot be empty")
	}

	object, ok := payload.(map[string]any)
	if !ok {
		return nil, domainerrors.ErrMalformedPayload
	}

	var missing []string
	for _, key := range keys {
		if _, ok := object[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, malformed("Error: Key(s) " + strings.Join(missing, ", ") + " required")
	}

	order, err := objectKeys(body)
	if err != nil {
		return nil, domainerrors.ErrMalformedPayload
	}

	var unexpected []string
	for _, key := range order {
		if !slices.Contains(keys, key) {
			unexpected = append(unexpected, key)
		}
	}
	if len(unexpected) > 0 {
		return nil, malformed("Error: Key(s) " + strings.Join(unexpected, ", ") + " not accepted in this response")
	}

	values := make(map[string]*string, len(keys))
	for _, key := range keys {
		isNullable := slices.Contains(nullable, key)
		if object[key] == nil && isNullable {
			values[key] = nil

			continue
		}

		value, ok := object[key].(string)
		if !ok {
			if isNullable {
				return nil, malformed("Error: Key " + key + " must be of type str or None")
			}

			return nil, malformed("Error: Key " + key + " must be of type str")
		}
		values[key] = &value
	}

	return values, nil
}

func malformed(message string) error {
	return domainerrors.ErrMalformedPayload.WithMessage(message)
}

// decodeStrict decodes exactly one JSON value and rejects trailing data.
func decodeStrict(body []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	if err := dec.Decode(v); err != nil {
		return errors.WithStack(err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errors.New("unexpected data after JSON value")
	}

	return nil
}

func isEmptyPayload(payload any) bool {
	switch v := payload.(type) {
	case nil:
		return true
	case map[string]any:
		return len(v) == 0
	case []any:
		return len(v) == 0
	case string:
		return v == ""
	case bool:
		return !v
	case json.Number:
		f, err := v.Float64()

		return err == nil && f == 0
	default:
		return false
	}
}

// objectKeys lists the top-level keys of a JSON object in document order, without duplicates.
func objectKeys(body []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	if _, err := dec.Token(); err != nil {
		return nil, errors.WithStack(err)
	}

	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, errors.WithStack(err)
		}

		key, ok := tok.(string)
		if !ok {
			return nil, errors.Errorf("unexpected token %v", tok)
		}
		if !slices.Contains(keys, key) {
			keys = append(keys, key)
		}

		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil, errors.WithStack(err)
		}
	}

	return keys, nil
}

// Package validators contains validators found throughout the application
// that have been abstracted away from the main code
package validators

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrPlateEmpty   = errors.New("no license plate provided")
	ErrPlateInvalid = errors.New("invalid license plate provided")

	// Letters, digits and dashes, 5 to 10 characters. Mexican plates have
	// several formats so anything stricter starts rejecting real plates
	plateRegex = regexp.MustCompile(`^[A-Z0-9][A-Z0-9-]{3,8}[A-Z0-9]$`)
)

// NormalizePlate uppercases a plate and strips surrounding whitespace so
// lookups are exact-match regardless of how the plate was typed
func NormalizePlate(p string) string {
	return strings.ToUpper(strings.TrimSpace(p))
}

func PlateValidator(p string) error {
	p = NormalizePlate(p)

	if p == "" {
		return ErrPlateEmpty
	}

	if !plateRegex.MatchString(p) {
		return ErrPlateInvalid
	}

	return nil
}

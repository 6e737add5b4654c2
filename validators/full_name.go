package validators

import (
	"errors"
	"strings"
)

var ErrNameEmpty = errors.New("no name provided")

// SplitFullName splits a single full-name form field into first name,
// paternal surname and maternal surname. The maternal surname is empty when
// fewer than three tokens were provided. Registration prefers explicit name
// fields; this only exists for forms that still submit nombre_completo
func SplitFullName(full string) (first, paternal, maternal string, err error) {
	tokens := strings.Fields(full)

	switch len(tokens) {
	case 0:
		return "", "", "", ErrNameEmpty
	case 1:
		return tokens[0], "", "", nil
	case 2:
		return tokens[0], tokens[1], "", nil
	default:
		return tokens[0], tokens[1], strings.Join(tokens[2:], " "), nil
	}
}

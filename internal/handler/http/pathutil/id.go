package pathutil

import (
	"errors"
	"strings"
	"unicode"
)

// ErrInvalidID is returned when the ID in the URL path is invalid.
var ErrInvalidID = errors.New("invalid id")

// MaxIDLength bounds identifiers accepted from the path.
const MaxIDLength = 128

// ValidID trims raw and checks that it is a usable catalog identifier:
// non-empty, at most MaxIDLength bytes, without slashes or control characters.
//
// Example:
//
//	id, err := ValidID(r.PathValue("id"))
func ValidID(raw string) (string, error) {
	id := strings.TrimSpace(raw)
	if id == "" || len(id) > MaxIDLength {
		return "", ErrInvalidID
	}
	for _, r := range id {
		if r == '/' || unicode.IsControl(r) {
			return "", ErrInvalidID
		}
	}
	return id, nil
}

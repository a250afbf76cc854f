package valueobject

import (
	"strings"
	"unicode/utf8"
)

const usernameMaxLength = 50

// Username is a non-blank display handle of at most 50 characters.
type Username struct {
	value string
}

// NewUsername validates raw and wraps it. The value is kept as given.
func NewUsername(raw string) (Username, error) {
	if strings.TrimSpace(raw) == "" {
		return Username{}, ErrEmptyUsername
	}
	if utf8.RuneCountInString(raw) > usernameMaxLength {
		return Username{}, ErrUsernameTooLong
	}
	return Username{value: raw}, nil
}

func (u Username) Value() string  { return u.value }
func (u Username) String() string { return u.value }

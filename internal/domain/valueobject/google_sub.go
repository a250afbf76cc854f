package valueobject

import (
	"strings"
	"unicode/utf8"
)

const googleSubMaxLength = 128

// GoogleSub is Google's opaque subject identifier for an account.
type GoogleSub struct {
	value string
}

func NewGoogleSub(raw string) (GoogleSub, error) {
	if strings.TrimSpace(raw) == "" {
		return GoogleSub{}, ErrGoogleSubEmpty
	}
	if utf8.RuneCountInString(raw) > googleSubMaxLength {
		return GoogleSub{}, ErrGoogleSubTooLong
	}
	return GoogleSub{value: raw}, nil
}

func (s GoogleSub) Value() string  { return s.value }
func (s GoogleSub) String() string { return s.value }

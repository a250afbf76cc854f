package valueobject

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	passwordMinLength = 8
	passwordMaxLength = 100

	// PasswordSpecialCharacters lists the characters accepted by the special character rule.
	PasswordSpecialCharacters = `!@#$%^&*(),.?":{}|<>`
)

// PlainPassword is a user supplied password that satisfies the password policy.
// It is never persisted; only its HashedPassword is.
type PlainPassword struct {
	value string
}

// NewPlainPassword checks the policy in a fixed order and reports the first
// rule that fails: too short, too long, uppercase, lowercase, digit, special.
func NewPlainPassword(raw string) (PlainPassword, error) {
	n := utf8.RuneCountInString(raw)
	if n < passwordMinLength {
		return PlainPassword{}, ErrPasswordTooShort
	}
	if n > passwordMaxLength {
		return PlainPassword{}, ErrPasswordTooLong
	}
	if !strings.ContainsFunc(raw, unicode.IsUpper) {
		return PlainPassword{}, ErrPasswordMissingUppercase
	}
	if !strings.ContainsFunc(raw, unicode.IsLower) {
		return PlainPassword{}, ErrPasswordMissingLowercase
	}
	if !strings.ContainsFunc(raw, unicode.IsDigit) {
		return PlainPassword{}, ErrPasswordMissingNumber
	}
	if !strings.ContainsAny(raw, PasswordSpecialCharacters) {
		return PlainPassword{}, ErrPasswordMissingSpecialCharacter
	}
	return PlainPassword{value: raw}, nil
}

func (p PlainPassword) Value() string { return p.value }

// String masks the secret so it never ends up in logs.
func (p PlainPassword) String() string { return "********" }

// HashedPassword is the opaque output of a Hasher. No format is enforced.
type HashedPassword struct {
	value string
}

func NewHashedPassword(hash string) HashedPassword {
	return HashedPassword{value: hash}
}

func (h HashedPassword) Value() string { return h.value }

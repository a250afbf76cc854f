package valueobject

import "regexp"

var emailPattern = regexp.MustCompile(`^[^\s@]+@([^\s@]+\.)+[^\s@.]+$`)

// Email is an address of the form local-part@domain.tld.
type Email struct {
	value string
}

func NewEmail(raw string) (Email, error) {
	if !emailPattern.MatchString(raw) {
		return Email{}, ErrInvalidEmailFormat
	}
	return Email{value: raw}, nil
}

func (e Email) Value() string  { return e.value }
func (e Email) String() string { return e.value }

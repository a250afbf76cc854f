package valueobject

import "errors"

// Validation failures raised while constructing value objects. Each one maps
// to a single field-level message.
var (
	ErrEmptyUsername   = errors.New("username must not be empty")
	ErrUsernameTooLong = errors.New("username must not exceed 50 characters")

	ErrInvalidEmailFormat = errors.New("invalid email format")

	ErrPasswordTooShort                = errors.New("password must be at least 8 characters")
	ErrPasswordTooLong                 = errors.New("password must not exceed 100 characters")
	ErrPasswordMissingUppercase        = errors.New("password must contain at least one uppercase letter")
	ErrPasswordMissingLowercase        = errors.New("password must contain at least one lowercase letter")
	ErrPasswordMissingNumber           = errors.New("password must contain at least one number")
	ErrPasswordMissingSpecialCharacter = errors.New("password must contain at least one special character")

	ErrGoogleSubEmpty   = errors.New("google sub must not be empty")
	ErrGoogleSubTooLong = errors.New("google sub must not exceed 128 characters")

	ErrUnknownAuthType = errors.New("unknown auth type")
)

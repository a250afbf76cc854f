package repository

import (
	"fmt"

	"github.com/google/uuid"
)

// EntityNotFoundError is a generic miss on Get.
type EntityNotFoundError struct {
	Repository string
	ID         uuid.UUID
}

func (e *EntityNotFoundError) Error() string {
	return fmt.Sprintf("%s not found in %s", e.ID, e.Repository)
}

type UsernameAlreadyExistsError struct {
	Username string
}

func (e *UsernameAlreadyExistsError) Error() string {
	return fmt.Sprintf("username %s already exists", e.Username)
}

type EmailAlreadyExistsError struct {
	Email string
}

func (e *EmailAlreadyExistsError) Error() string {
	return fmt.Sprintf("email %s already exists", e.Email)
}

type UsernameNotFoundError struct {
	Username string
}

func (e *UsernameNotFoundError) Error() string {
	return fmt.Sprintf("username %s not found", e.Username)
}

// LocalAuthInfoNotFoundError means the user exists but has no local credential.
type LocalAuthInfoNotFoundError struct {
	UserID uuid.UUID
}

func (e *LocalAuthInfoNotFoundError) Error() string {
	return fmt.Sprintf("local auth info not found for user_id: %s", e.UserID)
}

// GoogleSubAlreadyExistsError reports a second link to the same Google account.
type GoogleSubAlreadyExistsError struct {
	Sub string
}

func (e *GoogleSubAlreadyExistsError) Error() string {
	return fmt.Sprintf("google sub %s already linked", e.Sub)
}

// AuthInfoAlreadyExistsError reports a second credential of one kind for a user.
type AuthInfoAlreadyExistsError struct {
	UserID uuid.UUID
}

func (e *AuthInfoAlreadyExistsError) Error() string {
	return fmt.Sprintf("auth info already exists for user_id: %s", e.UserID)
}

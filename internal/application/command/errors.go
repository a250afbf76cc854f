package command

import "fmt"

// RepositoryNotFoundError is a wiring error: a handler was built without a
// repository it needs.
type RepositoryNotFoundError struct {
	Name string
}

func (e *RepositoryNotFoundError) Error() string {
	return fmt.Sprintf("repository %s not found", e.Name)
}

// WrongPasswordError reports a credential mismatch for Username. A password
// that fails the policy at login is reported the same way, with the policy
// error kept as Cause.
type WrongPasswordError struct {
	Username string
	Cause    error
}

func (e *WrongPasswordError) Error() string {
	return fmt.Sprintf("wrong password for username %s", e.Username)
}

func (e *WrongPasswordError) Unwrap() error { return e.Cause }

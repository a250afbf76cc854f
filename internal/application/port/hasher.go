// Package port declares the outbound contracts the command handlers depend on.
package port

// Hasher performs one-way password hashing.
//
// Hash may return different output for the same input (salted algorithms do).
// Verify must not panic on empty or malformed input; it reports false instead.
type Hasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hash string) bool
}

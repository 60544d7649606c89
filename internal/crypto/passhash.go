// Package crypto implements server-side password hashing and verification.
package crypto

import "golang.org/x/crypto/bcrypt"

// bcryptCost matches the work factor the service has always used; raising it
// invalidates nothing (old hashes keep verifying) but slows new registrations.
const bcryptCost = 10

// HashPassword returns a salted bcrypt digest of password. The salt is
// generated per call and embedded in the digest, so two calls on the same
// input yield different outputs.
func HashPassword(password []byte) ([]byte, error) {
	return bcrypt.GenerateFromPassword(password, bcryptCost)
}

// VerifyPassword reports whether password matches the stored digest.
// Comparison is constant-time; a malformed digest yields false, never a panic.
func VerifyPassword(password, digest []byte) bool {
	return bcrypt.CompareHashAndPassword(digest, password) == nil
}

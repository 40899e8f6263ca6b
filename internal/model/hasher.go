package model

// PasswordHasher produces per-account salts and one-way password digests.
//
// Hash must be deterministic for identical inputs, fixed-length, and not
// practically invertible. GenerateSalt must draw from a cryptographically
// strong random source.
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(secret, salt string) (string, error)
}

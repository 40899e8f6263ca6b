package hasher

import (
	"crypto/rand"
	"crypto/sha512"
	"encoding/hex"

	"github.com/withbaby/auth-server/internal/model"
)

const (
	saltLength   = 32
	saltAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

var _ model.PasswordHasher = (*SHA384)(nil)

// SHA384 implements PasswordHasher with hex-encoded SHA-384 digests over the
// concatenation of secret and salt.
type SHA384 struct{}

// NewSHA384 creates a new SHA384 hasher.
func NewSHA384() *SHA384 {
	return &SHA384{}
}

// GenerateSalt returns a fresh salt of 32 alphanumeric characters drawn from
// crypto/rand.
func (h *SHA384) GenerateSalt() (string, error) {
	buf := make([]byte, saltLength)
	if _, err := rand.Read(buf); err != nil {
		return "", model.NewError(model.CodeHashingFailure, "failed to generate salt", err)
	}
	for i, b := range buf {
		buf[i] = saltAlphabet[int(b)%len(saltAlphabet)]
	}
	return string(buf), nil
}

// Hash digests secret followed by salt and returns the hex encoding.
func (h *SHA384) Hash(secret, salt string) (string, error) {
	sum := sha512.Sum384([]byte(secret + salt))
	return hex.EncodeToString(sum[:]), nil
}

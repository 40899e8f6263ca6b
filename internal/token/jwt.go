package token

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/withbaby/auth-server/internal/model"
)

// Claims carries the account id bound at issuance.
type Claims struct {
	jwt.RegisteredClaims
	UID string `json:"uid"`
}

// JWT implements TokenIssuer backed by symmetric HMAC-SHA384.
type JWT struct {
	secretKey []byte
}

// NewJWT creates a token issuer signing with the provided secret key.
func NewJWT(secretKey string) (model.TokenIssuer, error) {
	if secretKey == "" {
		return nil, model.NewError(model.CodeConfigInvalid, "token signing key is empty", nil)
	}
	return &JWT{secretKey: []byte(secretKey)}, nil
}

// Issue signs a token embedding the account id.
func (j *JWT) Issue(id string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS384, Claims{UID: id})

	signed, err := token.SignedString(j.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// Verify checks the signature and returns the embedded account id. It does
// not check that the account still exists.
func (j *JWT) Verify(tokenString string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return j.secretKey, nil
	})
	if err != nil {
		return "", model.NewError(model.CodeTokenInvalid, "invalid token", err)
	}
	if !token.Valid {
		return "", model.ErrTokenInvalid
	}

	return claims.UID, nil
}

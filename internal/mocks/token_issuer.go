package mocks

import (
	"github.com/stretchr/testify/mock"
)

// TokenIssuer is a mock implementation of model.TokenIssuer.
type TokenIssuer struct {
	mock.Mock
}

func (m *TokenIssuer) Issue(id string) (string, error) {
	args := m.Called(id)
	return args.String(0), args.Error(1)
}

func (m *TokenIssuer) Verify(token string) (string, error) {
	args := m.Called(token)
	return args.String(0), args.Error(1)
}

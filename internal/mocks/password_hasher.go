package mocks

import (
	"github.com/stretchr/testify/mock"
)

// PasswordHasher is a mock implementation of model.PasswordHasher.
type PasswordHasher struct {
	mock.Mock
}

func (m *PasswordHasher) GenerateSalt() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}

func (m *PasswordHasher) Hash(secret, salt string) (string, error) {
	args := m.Called(secret, salt)
	return args.String(0), args.Error(1)
}

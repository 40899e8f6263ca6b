package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/withbaby/auth-server/internal/model"
)

// CredentialStore is a mock implementation of model.CredentialStore.
type CredentialStore struct {
	mock.Mock
}

func (m *CredentialStore) Exists(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *CredentialStore) Insert(ctx context.Context, draft model.AccountDraft) (string, error) {
	args := m.Called(ctx, draft)
	return args.String(0), args.Error(1)
}

func (m *CredentialStore) Get(ctx context.Context, username string) (model.Account, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(model.Account), args.Error(1)
}

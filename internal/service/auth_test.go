package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/withbaby/auth-server/internal/hasher"
	"github.com/withbaby/auth-server/internal/logger"
	"github.com/withbaby/auth-server/internal/mocks"
	"github.com/withbaby/auth-server/internal/model"
	"github.com/withbaby/auth-server/internal/token"
)

func TestAuth_SignUp_NewAccount(t *testing.T) {
	ctx := context.Background()
	store := &mocks.CredentialStore{}
	passwordHasher := &mocks.PasswordHasher{}
	issuer := &mocks.TokenIssuer{}
	log := logger.New(0)

	store.On("Exists", mock.Anything, "alice").Return(false, nil)
	passwordHasher.On("GenerateSalt").Return("salt", nil)
	passwordHasher.On("Hash", "secret1", "salt").Return("digest", nil)
	store.On("Insert", mock.Anything, model.AccountDraft{
		Username:       "alice",
		PasswordDigest: "digest",
		Salt:           "salt",
	}).Return("A1", nil)

	a := NewAuth(store, passwordHasher, issuer, log)

	id, err := a.SignUp(ctx, "alice", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "A1", id)
	store.AssertExpectations(t)
}

func TestAuth_SignUp_ExistingAccount(t *testing.T) {
	ctx := context.Background()
	store := &mocks.CredentialStore{}
	passwordHasher := &mocks.PasswordHasher{}
	issuer := &mocks.TokenIssuer{}

	store.On("Exists", mock.Anything, "alice").Return(true, nil)

	a := NewAuth(store, passwordHasher, issuer, logger.New(0))

	_, err := a.SignUp(ctx, "alice", "secret2")
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrAccountAlreadyExists))
	store.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestAuth_SignUp_SaltFailureNoSideEffect(t *testing.T) {
	ctx := context.Background()
	store := &mocks.CredentialStore{}
	passwordHasher := &mocks.PasswordHasher{}
	issuer := &mocks.TokenIssuer{}

	store.On("Exists", mock.Anything, "alice").Return(false, nil)
	passwordHasher.On("GenerateSalt").Return("", model.NewError(model.CodeHashingFailure, "failed to generate salt", nil))

	a := NewAuth(store, passwordHasher, issuer, logger.New(0))

	_, err := a.SignUp(ctx, "alice", "secret1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrHashingFailure))
	store.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestAuth_SignUp_RaceLostAtInsert(t *testing.T) {
	ctx := context.Background()
	store := &mocks.CredentialStore{}
	passwordHasher := &mocks.PasswordHasher{}
	issuer := &mocks.TokenIssuer{}

	// Both concurrent signups pass the advisory check; the store's
	// uniqueness constraint rejects the loser at insert time.
	store.On("Exists", mock.Anything, "alice").Return(false, nil)
	passwordHasher.On("GenerateSalt").Return("salt", nil)
	passwordHasher.On("Hash", "secret1", "salt").Return("digest", nil)
	store.On("Insert", mock.Anything, mock.Anything).
		Return("", model.NewError(model.CodeStorageFailure, "failed to insert account", errors.New("unique constraint violation")))

	a := NewAuth(store, passwordHasher, issuer, logger.New(0))

	_, err := a.SignUp(ctx, "alice", "secret1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrStorageFailure))
	assert.False(t, errors.Is(err, model.ErrAccountAlreadyExists))
}

func TestAuth_SignIn_Success(t *testing.T) {
	ctx := context.Background()
	store := &mocks.CredentialStore{}
	passwordHasher := &mocks.PasswordHasher{}
	issuer := &mocks.TokenIssuer{}

	store.On("Get", mock.Anything, "alice").Return(model.Account{
		ID:             "A1",
		Username:       "alice",
		PasswordDigest: "digest",
		Salt:           "salt",
	}, nil)
	passwordHasher.On("Hash", "secret1", "salt").Return("digest", nil)
	issuer.On("Issue", "A1").Return("T1", nil)

	a := NewAuth(store, passwordHasher, issuer, logger.New(0))

	tok, err := a.SignIn(ctx, "alice", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "T1", tok)
}

func TestAuth_SignIn_WrongPassword(t *testing.T) {
	ctx := context.Background()
	store := &mocks.CredentialStore{}
	passwordHasher := &mocks.PasswordHasher{}
	issuer := &mocks.TokenIssuer{}

	store.On("Get", mock.Anything, "alice").Return(model.Account{
		ID:             "A1",
		Username:       "alice",
		PasswordDigest: "digest",
		Salt:           "salt",
	}, nil)
	passwordHasher.On("Hash", "wrong", "salt").Return("other-digest", nil)

	a := NewAuth(store, passwordHasher, issuer, logger.New(0))

	_, err := a.SignIn(ctx, "alice", "wrong")
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrInvalidCredential))
	issuer.AssertNotCalled(t, "Issue", mock.Anything)
}

func TestAuth_SignIn_UnknownUser(t *testing.T) {
	ctx := context.Background()
	store := &mocks.CredentialStore{}
	passwordHasher := &mocks.PasswordHasher{}
	issuer := &mocks.TokenIssuer{}

	store.On("Get", mock.Anything, "nobody").Return(model.Account{}, model.ErrAccountNotFound)

	a := NewAuth(store, passwordHasher, issuer, logger.New(0))

	_, err := a.SignIn(ctx, "nobody", "anything")
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrAccountNotFound))
}

func TestAuth_VerifyToken_Delegates(t *testing.T) {
	ctx := context.Background()
	store := &mocks.CredentialStore{}
	passwordHasher := &mocks.PasswordHasher{}
	issuer := &mocks.TokenIssuer{}

	issuer.On("Verify", "T1").Return("A1", nil)
	issuer.On("Verify", "garbage").Return("", model.ErrTokenInvalid)

	a := NewAuth(store, passwordHasher, issuer, logger.New(0))

	id, err := a.VerifyToken(ctx, "T1")
	require.NoError(t, err)
	assert.Equal(t, "A1", id)

	_, err = a.VerifyToken(ctx, "garbage")
	assert.True(t, errors.Is(err, model.ErrTokenInvalid))
}

func TestAuth_Exists_Delegates(t *testing.T) {
	ctx := context.Background()
	store := &mocks.CredentialStore{}
	passwordHasher := &mocks.PasswordHasher{}
	issuer := &mocks.TokenIssuer{}

	store.On("Exists", mock.Anything, "alice").Return(true, nil)
	store.On("Exists", mock.Anything, "bob").Return(false, nil)

	a := NewAuth(store, passwordHasher, issuer, logger.New(0))

	exists, err := a.Exists(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = a.Exists(ctx, "bob")
	require.NoError(t, err)
	assert.False(t, exists)
}

// fakeCredentialStore backs the end-to-end scenario with a map guarded by a
// mutex, enforcing username uniqueness at insert time like a real store.
type fakeCredentialStore struct {
	mu       sync.Mutex
	accounts map[string]model.Account
}

func newFakeCredentialStore() *fakeCredentialStore {
	return &fakeCredentialStore{accounts: make(map[string]model.Account)}
}

func (f *fakeCredentialStore) Exists(ctx context.Context, username string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.accounts[username]
	return ok, nil
}

func (f *fakeCredentialStore) Insert(ctx context.Context, draft model.AccountDraft) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.accounts[draft.Username]; ok {
		return "", model.NewError(model.CodeStorageFailure, "failed to insert account", errors.New("duplicate username"))
	}
	id := uuid.NewString()
	f.accounts[draft.Username] = model.Account{
		ID:             id,
		Username:       draft.Username,
		PasswordDigest: draft.PasswordDigest,
		Salt:           draft.Salt,
	}
	return id, nil
}

func (f *fakeCredentialStore) Get(ctx context.Context, username string) (model.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	account, ok := f.accounts[username]
	if !ok {
		return model.Account{}, model.ErrAccountNotFound
	}
	return account, nil
}

func TestAuth_FullScenario(t *testing.T) {
	ctx := context.Background()
	store := newFakeCredentialStore()
	issuer, err := token.NewJWT("scenario-secret")
	require.NoError(t, err)

	a := NewAuth(store, hasher.NewSHA384(), issuer, logger.New(0))

	id, err := a.SignUp(ctx, "alice", "secret1")
	require.NoError(t, err)
	require.NotEmpty(t, id)

	exists, err := a.Exists(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = a.SignUp(ctx, "alice", "secret2")
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrAccountAlreadyExists))

	tok, err := a.SignIn(ctx, "alice", "secret1")
	require.NoError(t, err)

	got, err := a.VerifyToken(ctx, tok)
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = a.SignIn(ctx, "alice", "wrong")
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrInvalidCredential))
}

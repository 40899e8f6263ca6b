package service

import (
	"context"
	"crypto/subtle"
	"fmt"

	"github.com/withbaby/auth-server/internal/logger"
	"github.com/withbaby/auth-server/internal/model"
)

// Auth orchestrates the four credential operations over the capability
// interfaces. It performs no recovery and no retries: every failure from a
// capability call is classified once and forwarded to the caller.
//
// Auth holds no mutable state; any number of operations may run concurrently.
type Auth struct {
	store  model.CredentialStore
	hasher model.PasswordHasher
	issuer model.TokenIssuer
	logger *logger.Logger
}

// NewAuth creates the Auth service over the given capabilities.
func NewAuth(
	store model.CredentialStore,
	hasher model.PasswordHasher,
	issuer model.TokenIssuer,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		store:  store,
		hasher: hasher,
		issuer: issuer,
		logger: logger,
	}
}

// SignUp registers a new account and returns its id.
//
// The existence pre-check is advisory: two concurrent signups for the same
// username can both pass it, and the loser is rejected by the store's
// uniqueness constraint at insert time, surfacing as a storage failure.
func (a *Auth) SignUp(ctx context.Context, username, password string) (string, error) {
	a.logger.Debug("Auth service: starting signup",
		"username", username)

	exists, err := a.store.Exists(ctx, username)
	if err != nil {
		a.logger.Error("Auth service: failed to check username",
			"username", username,
			"error", err.Error())
		return "", fmt.Errorf("failed to check username: %w", err)
	}
	if exists {
		a.logger.Info("Auth service: account already exists",
			"username", username)
		return "", model.ErrAccountAlreadyExists
	}

	salt, err := a.hasher.GenerateSalt()
	if err != nil {
		a.logger.Error("Auth service: failed to generate salt",
			"username", username,
			"error", err.Error())
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	digest, err := a.hasher.Hash(password, salt)
	if err != nil {
		a.logger.Error("Auth service: failed to hash password",
			"username", username,
			"error", err.Error())
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	id, err := a.store.Insert(ctx, model.AccountDraft{
		Username:       username,
		PasswordDigest: digest,
		Salt:           salt,
	})
	if err != nil {
		a.logger.Error("Auth service: failed to insert account",
			"username", username,
			"error", err.Error())
		return "", fmt.Errorf("failed to insert account: %w", err)
	}

	a.logger.Info("Auth service: signup completed",
		"username", username,
		"id", id)

	return id, nil
}

// SignIn exchanges valid credentials for a signed bearer token.
func (a *Auth) SignIn(ctx context.Context, username, password string) (string, error) {
	a.logger.Debug("Auth service: starting signin",
		"username", username)

	account, err := a.store.Get(ctx, username)
	if err != nil {
		a.logger.Info("Auth service: failed to get account",
			"username", username,
			"error", err.Error())
		return "", fmt.Errorf("failed to get account: %w", err)
	}

	digest, err := a.hasher.Hash(password, account.Salt)
	if err != nil {
		a.logger.Error("Auth service: failed to hash password",
			"username", username,
			"error", err.Error())
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	if subtle.ConstantTimeCompare([]byte(digest), []byte(account.PasswordDigest)) != 1 {
		a.logger.Info("Auth service: credential mismatch",
			"username", username)
		return "", model.ErrInvalidCredential
	}

	token, err := a.issuer.Issue(account.ID)
	if err != nil {
		a.logger.Error("Auth service: failed to issue token",
			"username", username,
			"error", err.Error())
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	a.logger.Info("Auth service: signin completed",
		"username", username)

	return token, nil
}

// VerifyToken validates a bearer token and returns the embedded account id.
func (a *Auth) VerifyToken(ctx context.Context, token string) (string, error) {
	return a.issuer.Verify(token)
}

// Exists reports whether an account with the given username is persisted.
func (a *Auth) Exists(ctx context.Context, username string) (bool, error) {
	return a.store.Exists(ctx, username)
}

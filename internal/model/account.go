package model

import "context"

// Account represents a persisted identity record. PasswordDigest holds the
// one-way hash of the plaintext password and the account salt; the plaintext
// itself is never stored.
type Account struct {
	ID             string
	Username       string
	PasswordDigest string
	Salt           string
}

// AccountDraft carries the fields needed to create an Account. The id is
// assigned by the store at insert time.
type AccountDraft struct {
	Username       string
	PasswordDigest string
	Salt           string
}

// CredentialStore defines persistence operations for accounts.
//
// Username uniqueness is enforced by the store at insert time; Exists is a
// best-effort pre-check only. Insert surfaces a uniqueness conflict as a
// storage failure even when a prior Exists call returned false.
type CredentialStore interface {
	Exists(ctx context.Context, username string) (bool, error)
	Insert(ctx context.Context, draft AccountDraft) (string, error)
	Get(ctx context.Context, username string) (Account, error)
}

package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/withbaby/auth-server/internal/model"
)

var _ model.CredentialStore = (*AccountRepository)(nil)

// AccountRepository is the relational CredentialStore. Username uniqueness
// is enforced by the UNIQUE constraint on the accounts table; a conflicting
// insert surfaces as a storage failure.
type AccountRepository struct {
	db *Connection
}

func NewAccountRepository(db *Connection) *AccountRepository {
	return &AccountRepository{
		db: db,
	}
}

func (r *AccountRepository) Exists(ctx context.Context, username string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM accounts WHERE username = $1)`

	err := r.db.QueryRow(ctx, query, username).Scan(&exists)
	if err != nil {
		return false, model.NewError(model.CodeStorageFailure, "failed to check account existence", err)
	}

	return exists, nil
}

func (r *AccountRepository) Insert(ctx context.Context, draft model.AccountDraft) (string, error) {
	var id string
	query := `INSERT INTO accounts (username, password_digest, salt)
			  VALUES ($1, $2, $3)
			  RETURNING id`

	err := r.db.QueryRow(ctx, query, draft.Username, draft.PasswordDigest, draft.Salt).Scan(&id)
	if err != nil {
		return "", model.NewError(model.CodeStorageFailure, "failed to insert account", err)
	}

	return id, nil
}

func (r *AccountRepository) Get(ctx context.Context, username string) (model.Account, error) {
	var account model.Account
	query := `SELECT id, username, password_digest, salt
			  FROM accounts WHERE username = $1`

	err := r.db.QueryRow(ctx, query, username).Scan(
		&account.ID, &account.Username, &account.PasswordDigest, &account.Salt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Account{}, model.ErrAccountNotFound
		}
		return model.Account{}, model.NewError(model.CodeStorageFailure, "failed to get account", err)
	}

	return account, nil
}

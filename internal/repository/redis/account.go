package redis

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/withbaby/auth-server/internal/model"
)

const accountKeyPrefix = "auth:account:"

var _ model.CredentialStore = (*AccountRepository)(nil)

// AccountRepository is the document-style CredentialStore. Each account is a
// JSON document keyed by username; uniqueness is enforced atomically with
// SET NX, so a lost signup race surfaces as a storage failure at insert time.
type AccountRepository struct {
	client *redis.Client
}

func NewAccountRepository(client *redis.Client) *AccountRepository {
	return &AccountRepository{
		client: client,
	}
}

type accountDocument struct {
	ID             string `json:"id"`
	Username       string `json:"username"`
	PasswordDigest string `json:"password_digest"`
	Salt           string `json:"salt"`
}

func accountKey(username string) string {
	return accountKeyPrefix + username
}

func (r *AccountRepository) Exists(ctx context.Context, username string) (bool, error) {
	n, err := r.client.Exists(ctx, accountKey(username)).Result()
	if err != nil {
		return false, model.NewError(model.CodeStorageFailure, "failed to check account existence", err)
	}

	return n > 0, nil
}

func (r *AccountRepository) Insert(ctx context.Context, draft model.AccountDraft) (string, error) {
	doc := accountDocument{
		ID:             uuid.NewString(),
		Username:       draft.Username,
		PasswordDigest: draft.PasswordDigest,
		Salt:           draft.Salt,
	}

	payload, err := json.Marshal(doc)
	if err != nil {
		return "", model.NewError(model.CodeStorageFailure, "failed to encode account", err)
	}

	set, err := r.client.SetNX(ctx, accountKey(draft.Username), payload, 0).Result()
	if err != nil {
		return "", model.NewError(model.CodeStorageFailure, "failed to insert account", err)
	}
	if !set {
		return "", model.NewError(model.CodeStorageFailure, "failed to insert account", errors.New("username already taken"))
	}

	return doc.ID, nil
}

func (r *AccountRepository) Get(ctx context.Context, username string) (model.Account, error) {
	payload, err := r.client.Get(ctx, accountKey(username)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return model.Account{}, model.ErrAccountNotFound
		}
		return model.Account{}, model.NewError(model.CodeStorageFailure, "failed to get account", err)
	}

	var doc accountDocument
	if err := json.Unmarshal(payload, &doc); err != nil {
		return model.Account{}, model.NewError(model.CodeStorageFailure, "failed to decode account", err)
	}

	return model.Account{
		ID:             doc.ID,
		Username:       doc.Username,
		PasswordDigest: doc.PasswordDigest,
		Salt:           doc.Salt,
	}, nil
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/withbaby/auth-server/database"
	"github.com/withbaby/auth-server/internal/model"
)

// Connection wraps a pgx connection pool shared by the repositories.
type Connection struct {
	*pgxpool.Pool
}

// NewConnection opens a connection pool and applies pending migrations.
func NewConnection(ctx context.Context, dsn string) (*Connection, error) {
	conf, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, model.NewError(model.CodeConfigInvalid, "invalid postgres dsn", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, conf)
	if err != nil {
		return nil, model.NewError(model.CodeStorageFailure, "failed to open connection pool", err)
	}

	if err := database.Migrate(ctx, dsn); err != nil {
		return nil, model.NewError(model.CodeStorageFailure, "failed to initialize database", err)
	}

	return &Connection{
		Pool: pool,
	}, nil
}

func (s *Connection) Close() error {
	if s.Pool != nil {
		s.Pool.Close()
	}
	return nil
}

func (s *Connection) Ping(ctx context.Context) error {
	if s.Pool == nil {
		return fmt.Errorf("connection pool is nil")
	}
	return s.Pool.Ping(ctx)
}

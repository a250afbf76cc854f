package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/go-identity-backend/internal/application/command"
)

// Store hands out repositories bound to the pool, or to a single
// transaction through WithinTransaction.
type Store struct {
	db TxBeginner
}

var _ command.Transactor = (*Store)(nil)

func NewStore(db TxBeginner) *Store {
	return &Store{db: db}
}

func (s *Store) Repositories() command.Repositories {
	return repositoriesFor(s.db)
}

func repositoriesFor(db DBTX) command.Repositories {
	return command.Repositories{
		Users:           NewUserRepository(db),
		LocalAuthInfos:  NewLocalAuthInfoRepository(db),
		GoogleAuthInfos: NewGoogleAuthInfoRepository(db),
	}
}

// WithinTransaction commits when fn returns nil and rolls back otherwise.
func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context, repos command.Repositories) error) (err error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
				err = errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
			}
		}
	}()

	if err = fn(ctx, repositoriesFor(tx)); err != nil {
		return err
	}
	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

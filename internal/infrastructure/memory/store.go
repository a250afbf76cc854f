// Package memory keeps users and credentials in process memory. It backs the
// command tests and STORE_DRIVER=memory.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/oksasatya/go-identity-backend/internal/application/command"
	"github.com/oksasatya/go-identity-backend/internal/domain/entity"
)

// Store owns the tables shared by the three repositories. txMu orders
// transactions against every write made outside one.
type Store struct {
	mu      sync.RWMutex
	txMu    sync.Mutex
	users   map[uuid.UUID]entity.User
	locals  map[uuid.UUID]entity.LocalAuthInfo
	googles map[uuid.UUID]entity.GoogleAuthInfo
}

var _ command.Transactor = (*Store)(nil)

func NewStore() *Store {
	return &Store{
		users:   make(map[uuid.UUID]entity.User),
		locals:  make(map[uuid.UUID]entity.LocalAuthInfo),
		googles: make(map[uuid.UUID]entity.GoogleAuthInfo),
	}
}

func (s *Store) Users() *UserRepository                     { return &UserRepository{s: s} }
func (s *Store) LocalAuthInfos() *LocalAuthInfoRepository   { return &LocalAuthInfoRepository{s: s} }
func (s *Store) GoogleAuthInfos() *GoogleAuthInfoRepository { return &GoogleAuthInfoRepository{s: s} }

func (s *Store) Repositories() command.Repositories {
	return s.repositories(false)
}

func (s *Store) repositories(inTx bool) command.Repositories {
	return command.Repositories{
		Users:           &UserRepository{s: s, inTx: inTx},
		LocalAuthInfos:  &LocalAuthInfoRepository{s: s, inTx: inTx},
		GoogleAuthInfos: &GoogleAuthInfoRepository{s: s, inTx: inTx},
	}
}

// lockWrite takes the table lock for a write. Writes outside a transaction
// also wait for any open transaction, so a rollback never undoes them.
func (s *Store) lockWrite(inTx bool) (unlock func()) {
	if inTx {
		s.mu.Lock()
		return s.mu.Unlock
	}
	s.txMu.Lock()
	s.mu.Lock()
	return func() {
		s.mu.Unlock()
		s.txMu.Unlock()
	}
}

// WithinTransaction runs fn with exclusive write access and restores the
// previous tables when fn fails. Reads are not blocked and may observe the
// transaction's writes before it returns.
func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context, repos command.Repositories) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	users, locals, googles := clone(s.users), clone(s.locals), clone(s.googles)
	s.mu.RUnlock()

	if err := fn(ctx, s.repositories(true)); err != nil {
		s.mu.Lock()
		s.users, s.locals, s.googles = users, locals, googles
		s.mu.Unlock()
		return err
	}
	return nil
}

func clone[V any](m map[uuid.UUID]V) map[uuid.UUID]V {
	out := make(map[uuid.UUID]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

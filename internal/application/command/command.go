// Package command holds the use cases of the identity backend. Each handler
// validates its input into value objects, talks to the repositories and
// ports it was constructed with, and returns a typed result or a domain error.
package command

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-identity-backend/internal/domain/repository"
)

// Handler executes one command type.
type Handler[C any, R any] interface {
	Execute(ctx context.Context, cmd C) (R, error)
}

// Repositories bundles the persistence ports a handler may need.
type Repositories struct {
	Users           repository.UserRepository
	LocalAuthInfos  repository.LocalAuthInfoRepository
	GoogleAuthInfos repository.GoogleAuthInfoRepository
}

func (r Repositories) users() (repository.UserRepository, error) {
	if r.Users == nil {
		return nil, &RepositoryNotFoundError{Name: "user"}
	}
	return r.Users, nil
}

func (r Repositories) localAuthInfos() (repository.LocalAuthInfoRepository, error) {
	if r.LocalAuthInfos == nil {
		return nil, &RepositoryNotFoundError{Name: "local_auth_info"}
	}
	return r.LocalAuthInfos, nil
}

// Transactor runs fn against repositories bound to a single transaction.
// The transaction commits when fn returns nil and rolls back otherwise.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}

type options struct {
	tx     Transactor
	logger logrus.FieldLogger
}

// Option configures a handler.
type Option func(*options)

// WithTransactor makes multi-write commands run inside tx.
func WithTransactor(tx Transactor) Option {
	return func(o *options) { o.tx = tx }
}

// WithLogger sets the logger used for rejections and infrastructure failures.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *options) { o.logger = l }
}

func newOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		o.logger = l
	}
	return o
}

// run calls fn inside the transactor when there is one, otherwise with repos directly.
func (o options) run(ctx context.Context, repos Repositories, fn func(ctx context.Context, repos Repositories) error) error {
	if o.tx == nil {
		return fn(ctx, repos)
	}
	return o.tx.WithinTransaction(ctx, fn)
}

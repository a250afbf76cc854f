// Package entity holds the identity aggregates. Entities are immutable:
// every change returns a new value with a refreshed UpdatedAt.
package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/go-identity-backend/pkg/clock"
)

// Identifiable is anything compared by identity rather than by value.
type Identifiable interface {
	Identity() uuid.UUID
}

// Entity carries the identity and timestamps shared by every entity.
type Entity struct {
	id        uuid.UUID
	createdAt time.Time
	updatedAt time.Time
}

// NewEntity generates a fresh id and stamps both timestamps with c.Now().
func NewEntity(c clock.Clock) Entity {
	now := c.Now()
	return Entity{id: uuid.New(), createdAt: now, updatedAt: now}
}

// RestoreEntity rebuilds an Entity from stored values. Both timestamps are required.
func RestoreEntity(id uuid.UUID, createdAt, updatedAt time.Time) (Entity, error) {
	if createdAt.IsZero() || updatedAt.IsZero() {
		return Entity{}, ErrTimestampRequired
	}
	return Entity{id: id, createdAt: createdAt, updatedAt: updatedAt}, nil
}

func (e Entity) ID() uuid.UUID        { return e.id }
func (e Entity) CreatedAt() time.Time { return e.createdAt }
func (e Entity) UpdatedAt() time.Time { return e.updatedAt }

// Identity implements Identifiable.
func (e Entity) Identity() uuid.UUID { return e.id }

// Equal reports whether other is an Entity with the same id. Field contents
// are ignored. Concrete entities shadow this so only the same type matches.
func (e Entity) Equal(other any) bool { return sameEntity(e, other) }

func sameEntity[T Identifiable](self T, other any) bool {
	o, ok := other.(T)
	return ok && o.Identity() == self.Identity()
}

// touched returns a copy with UpdatedAt moved to c.Now().
func (e Entity) touched(c clock.Clock) Entity {
	e.updatedAt = c.Now()
	return e
}

// AggregateRoot marks an entity that is its own consistency boundary.
type AggregateRoot interface {
	Identifiable
	aggregateRoot()
}

// Aggregate is embedded by aggregate roots. It adds no fields.
type Aggregate struct {
	Entity
}

func (Aggregate) aggregateRoot() {}

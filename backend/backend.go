// Package backend defines the capability interface every database under
// benchmark implements, the predicate/patch query model the harness
// drives it with, and the error kinds the harness classifies failures
// by.
package backend

import (
	"errors"

	"dbbench/dataset"
)

// Error kinds. Backends wrap the underlying driver error with one of
// these so the harness can tell a skippable backend (unreachable,
// schema rejected) from an aborted run (an individual operation
// failed).
var (
	ErrConnection = errors.New("backend unreachable")
	ErrSchema     = errors.New("schema setup rejected")
	ErrRead       = errors.New("read failed")
	ErrWrite      = errors.New("write failed")
)

// Backend is one concrete database system under benchmark. The harness
// owns the call order; implementations own connection handles, schema,
// and ingest granularity. All handles acquired in Setup must be
// released by Teardown, which runs whether or not the run succeeded.
type Backend interface {
	// Name labels the backend in logs and reports.
	Name() string
	// Setup prepares clean storage, recreating the backend's namespace
	// from scratch. Fails with ErrConnection or ErrSchema.
	Setup() error
	// Create ingests all users, then all orders. Fails with ErrWrite.
	Create(users []dataset.User, orders []dataset.Order) error
	// ReadPoint looks up one user by exact key. Returns nil, nil when
	// no such user exists. Fails with ErrRead.
	ReadPoint(userID int) (*dataset.User, error)
	// ReadRange returns all orders matching p. Fails with ErrRead.
	ReadRange(p Predicate) ([]dataset.Order, error)
	// Update applies patch to all orders matching p in one bulk
	// operation. Fails with ErrWrite.
	Update(p Predicate, patch Patch) error
	// Delete removes all orders matching p in one bulk operation.
	// Fails with ErrWrite.
	Delete(p Predicate) error
	// Teardown releases all resources held by the backend.
	Teardown() error
}

// Predicate selects orders. It is a conjunction of the three optional
// conditions the workload needs; zero-valued fields do not constrain.
// MinAmount is an exclusive lower bound.
type Predicate struct {
	UserID    int
	MinAmount float64
	Status    dataset.Status
}

// Matches reports whether o satisfies every set condition.
func (p Predicate) Matches(o dataset.Order) bool {
	if p.UserID != 0 && o.UserID != p.UserID {
		return false
	}
	if p.MinAmount != 0 && o.Amount <= p.MinAmount {
		return false
	}
	if p.Status != "" && o.Status != p.Status {
		return false
	}
	return true
}

// Patch carries the field values a bulk update sets.
type Patch struct {
	Status dataset.Status
}

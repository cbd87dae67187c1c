package repository

import (
	"context"
)

// UnitOfWork defines the contract for transactional work on the account book.
//
// Do runs fn inside a transaction boundary. Repositories obtained from the
// UnitOfWork passed to fn stage their writes; the writes are committed when fn
// returns nil and discarded otherwise.
type UnitOfWork interface {
	// Do executes the given function within a transaction boundary.
	// If the function returns an error, nothing it staged is applied.
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	// AccountRepository returns the account repository bound to the current transaction.
	AccountRepository() (AccountRepository, error)

	// AfterCommit registers fn to run as part of a successful commit, before
	// the transaction boundary is released. fn must not use the UnitOfWork.
	AfterCommit(fn func())
}

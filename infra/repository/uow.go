package repository

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/Badi1298/Bankist/pkg/domain/account"
	"github.com/Badi1298/Bankist/pkg/repository"
)

// ErrNoTransaction is returned when a repository is requested outside Do.
var ErrNoTransaction = errors.New("repository requested outside a unit of work")

// Store is the in-memory account book. Every unit of work holds mu for its
// whole duration, so all reads and writes of one Do call are serialised
// against every other call and a transfer never interleaves with another
// mutation.
type Store struct {
	mu       sync.Mutex
	accounts []*account.Account
}

// NewStore creates an empty account book.
func NewStore() *Store {
	return &Store{accounts: make([]*account.Account, 0)}
}

// UoW provides the transaction boundary and repository access in one abstraction.
type UoW struct {
	store  *Store
	tx     *tx
	logger *slog.Logger
}

// NewUoW creates a new UoW over store.
func NewUoW(store *Store, logger *slog.Logger) *UoW {
	return &UoW{store: store, logger: logger.With("uow", "memory")}
}

// Do runs the given function in a transaction boundary, providing a UoW with
// repository access. Staged writes are committed only when fn returns nil.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	if u.tx != nil {
		// Nested Do joins the outer transaction.
		return fn(u)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	u.store.mu.Lock()
	defer u.store.mu.Unlock()

	t := newTx(u.store)
	if err := fn(&UoW{store: u.store, tx: t, logger: u.logger}); err != nil {
		u.logger.Debug("rolling back", "staged_entries", len(t.entries), "error", err)
		return err
	}
	t.commit()
	u.logger.Debug("committed",
		"created", len(t.created),
		"entries", len(t.entries),
		"deleted", len(t.deleted),
	)
	return nil
}

// AccountRepository returns the account repository bound to the current transaction.
func (u *UoW) AccountRepository() (repository.AccountRepository, error) {
	if u.tx == nil {
		return nil, ErrNoTransaction
	}
	return &accountRepository{tx: u.tx}, nil
}

// AfterCommit registers fn to run inside the commit of the current transaction.
// Outside Do there is nothing to attach to and fn runs immediately.
func (u *UoW) AfterCommit(fn func()) {
	if u.tx == nil {
		fn()
		return
	}
	u.tx.hooks = append(u.tx.hooks, fn)
}

// Ensure UoW implements the UnitOfWork interface.
var _ repository.UnitOfWork = (*UoW)(nil)

package repository

import (
	"github.com/Badi1298/Bankist/pkg/domain/account"
)

// AccountRepository defines the data access operations on the account book.
// Accounts are addressed by username; writes are staged by the enclosing
// UnitOfWork and become visible only when it commits.
type AccountRepository interface {
	// Get returns the stored account for username or account.ErrAccountNotFound.
	Get(username string) (*account.Account, error)
	// List returns every account in insertion order.
	List() ([]*account.Account, error)
	// Create adds a new account; account.ErrDuplicateUsername if the username is taken.
	Create(a *account.Account) error
	// Apply stages every entry of delta, or none of them.
	Apply(delta account.Delta) error
	// Delete removes the account named username.
	Delete(username string) error
}

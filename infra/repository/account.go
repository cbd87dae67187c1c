package repository

import (
	"fmt"
	"slices"

	"github.com/Badi1298/Bankist/pkg/domain/account"
	"github.com/Badi1298/Bankist/pkg/repository"
)

// tx stages writes against a Store until commit.
type tx struct {
	store   *Store
	created []*account.Account
	entries []account.Entry
	deleted map[string]struct{}
	hooks   []func()
}

func newTx(store *Store) *tx {
	return &tx{store: store, deleted: make(map[string]struct{})}
}

// visible returns the accounts as this transaction sees them.
func (t *tx) visible() []*account.Account {
	out := make([]*account.Account, 0, len(t.store.accounts)+len(t.created))
	for _, a := range append(slices.Clone(t.store.accounts), t.created...) {
		if _, gone := t.deleted[a.Username()]; !gone {
			out = append(out, a)
		}
	}
	return out
}

func (t *tx) find(username string) *account.Account {
	for _, a := range t.visible() {
		if a.Username() == username {
			return a
		}
	}
	return nil
}

func (t *tx) commit() {
	t.store.accounts = append(t.store.accounts, t.created...)
	for _, e := range t.entries {
		for _, a := range t.store.accounts {
			if a.Username() == e.Username {
				a.Append(e.Amount)
				break
			}
		}
	}
	if len(t.deleted) > 0 {
		t.store.accounts = slices.DeleteFunc(t.store.accounts, func(a *account.Account) bool {
			_, gone := t.deleted[a.Username()]
			if gone {
				a.MarkClosed()
			}
			return gone
		})
	}
	for _, hook := range t.hooks {
		hook()
	}
}

type accountRepository struct {
	tx *tx
}

// Get returns the account for username.
func (r *accountRepository) Get(username string) (*account.Account, error) {
	if a := r.tx.find(username); a != nil {
		return a, nil
	}
	return nil, fmt.Errorf("%w: %q", account.ErrAccountNotFound, username)
}

// List returns the accounts in insertion order.
func (r *accountRepository) List() ([]*account.Account, error) {
	return r.tx.visible(), nil
}

// Create stages a new account.
func (r *accountRepository) Create(a *account.Account) error {
	if r.tx.find(a.Username()) != nil {
		return fmt.Errorf("%w: %q", account.ErrDuplicateUsername, a.Username())
	}
	r.tx.created = append(r.tx.created, a)
	return nil
}

// Apply stages all entries of delta after checking every target exists.
func (r *accountRepository) Apply(delta account.Delta) error {
	if len(delta.Entries) == 0 {
		return account.ErrEmptyDelta
	}
	for _, e := range delta.Entries {
		if r.tx.find(e.Username) == nil {
			return fmt.Errorf("%w: %q", account.ErrAccountNotFound, e.Username)
		}
	}
	r.tx.entries = append(r.tx.entries, delta.Entries...)
	return nil
}

// Delete stages the removal of username.
func (r *accountRepository) Delete(username string) error {
	if r.tx.find(username) == nil {
		return fmt.Errorf("%w: %q", account.ErrAccountNotFound, username)
	}
	r.tx.deleted[username] = struct{}{}
	return nil
}

var _ repository.AccountRepository = (*accountRepository)(nil)

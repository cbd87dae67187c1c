// Package session holds the single authenticated-account association of a
// running ledger, together with its view state.
package session

import (
	"sync"

	"github.com/Badi1298/Bankist/pkg/domain/account"
)

// Session references at most one account owned by the store. It is created
// empty, set by a successful login and cleared by logout or by closing the
// referenced account. A Session is passed explicitly to every operation that
// needs the current account; there is no package level current account.
//
// Closing an account flags it inside the store's commit, so every Session
// referencing it, not only the one that closed it, reports no account from
// that commit on.
type Session struct {
	mu            sync.Mutex
	account       *account.Account
	sortAscending bool
}

// New returns an empty session.
func New() *Session {
	return &Session{}
}

// Start associates the session with acc and resets the sort flag.
func (s *Session) Start(acc *account.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.account = acc
	s.sortAscending = false
}

// Clear drops the account reference and resets the sort flag.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clear()
}

func (s *Session) clear() {
	s.account = nil
	s.sortAscending = false
}

// current returns the live account, dropping a closed one. s.mu must be held.
func (s *Session) current() *account.Account {
	if s.account != nil && s.account.Closed() {
		s.clear()
	}
	return s.account
}

// Account returns the current account or account.ErrNoSession.
func (s *Session) Account() (*account.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc := s.current()
	if acc == nil {
		return nil, account.ErrNoSession
	}
	return acc, nil
}

// Active reports whether an account is logged in.
func (s *Session) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current() != nil
}

// SortAscending reports whether the ascending movement view is selected.
func (s *Session) SortAscending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current()
	return s.sortAscending
}

// ToggleSort flips the sort flag and returns the new value.
func (s *Session) ToggleSort() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current()
	s.sortAscending = !s.sortAscending
	return s.sortAscending
}

package account

import (
	"errors"
	"fmt"
)

// Rejection categories. Every rejected operation returns an error that wraps
// exactly one of these together with the specific reason below, so callers
// can branch on either with errors.Is.
var (
	// ErrAuthFailure is returned when a username is unknown or the pin does not match.
	ErrAuthFailure = errors.New("authentication failed")
	// ErrTransferRejected is returned when a transfer precondition fails.
	ErrTransferRejected = errors.New("transfer rejected")
	// ErrLoanRejected is returned when a loan precondition fails.
	ErrLoanRejected = errors.New("loan rejected")
	// ErrCloseRejected is returned when closing an account is refused.
	ErrCloseRejected = errors.New("close rejected")
)

// Rejection reasons.
var (
	// ErrAmountMustBePositive is returned when a transfer or loan amount is zero or negative.
	ErrAmountMustBePositive = errors.New("amount must be positive")
	// ErrRecipientNotFound is returned when the transfer recipient does not exist.
	ErrRecipientNotFound = errors.New("recipient not found")
	// ErrCannotTransferToSameAccount is returned when sender and recipient share a username.
	ErrCannotTransferToSameAccount = errors.New("cannot transfer to same account")
	// ErrInsufficientFunds is returned when the sender's balance is below the transfer amount.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrNoQualifyingDeposit is returned when no movement reaches the loan qualifying ratio.
	ErrNoQualifyingDeposit = errors.New("no qualifying deposit")
	// ErrCredentialMismatch is returned when close confirmation credentials differ.
	ErrCredentialMismatch = errors.New("credential mismatch")
)

var (
	// ErrAccountNotFound is returned when an account cannot be found in the store.
	ErrAccountNotFound = errors.New("account not found")
	// ErrDuplicateUsername is returned when a second account derives an existing username.
	ErrDuplicateUsername = errors.New("duplicate username")
	// ErrNoSession is returned when an operation needs a logged-in account and there is none.
	ErrNoSession = errors.New("no active session")
	// ErrEmptyDelta is returned when applying a delta without entries.
	ErrEmptyDelta = errors.New("empty ledger delta")
)

// reject joins a rejection category with its reason.
func reject(category, reason error) error {
	return fmt.Errorf("%w: %w", category, reason)
}

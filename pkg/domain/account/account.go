package account

import (
	"errors"
	"slices"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Account represents one bank customer and their movement history.
//
// Invariants:
//   - The username is derived from the owner when the account is built and never changes.
//   - Movements are append-only and kept in chronological order.
//   - The balance is always the sum of the movements; it is never stored.
type Account struct {
	ID           uuid.UUID
	Owner        string
	InterestRate decimal.Decimal
	CreatedAt    time.Time

	username  string
	pin       int
	movements []decimal.Decimal
	closed    atomic.Bool
}

// Builder provides a fluent API for constructing fully populated accounts.
type Builder struct {
	id           uuid.UUID
	owner        string
	interestRate decimal.Decimal
	pin          int
	movements    []decimal.Decimal
	createdAt    time.Time
}

// New creates a Builder with a fresh ID and no movements.
func New() *Builder {
	return &Builder{
		id:           uuid.New(),
		interestRate: decimal.Zero,
		createdAt:    time.Now(),
	}
}

// WithID sets the account ID.
func (b *Builder) WithID(id uuid.UUID) *Builder {
	b.id = id
	return b
}

// WithOwner sets the display name the username is derived from. Mandatory.
func (b *Builder) WithOwner(owner string) *Builder {
	b.owner = owner
	return b
}

// WithInterestRate sets the percent earned on each qualifying deposit.
func (b *Builder) WithInterestRate(rate decimal.Decimal) *Builder {
	b.interestRate = rate
	return b
}

// WithPin sets the numeric secret used for login and close confirmation.
func (b *Builder) WithPin(pin int) *Builder {
	b.pin = pin
	return b
}

// WithMovements seeds the history. Only for fixtures and tests; the slice is copied.
func (b *Builder) WithMovements(movements ...decimal.Decimal) *Builder {
	b.movements = slices.Clone(movements)
	return b
}

// WithCreatedAt sets the creation timestamp.
func (b *Builder) WithCreatedAt(t time.Time) *Builder {
	b.createdAt = t
	return b
}

// Build validates the collected fields and returns the account with its
// username already derived.
func (b *Builder) Build() (*Account, error) {
	if strings.TrimSpace(b.owner) == "" {
		return nil, errors.New("owner is required")
	}
	if b.interestRate.IsNegative() {
		return nil, errors.New("interest rate must not be negative")
	}
	movements := b.movements
	if movements == nil {
		movements = []decimal.Decimal{}
	}
	return &Account{
		ID:           b.id,
		Owner:        b.owner,
		InterestRate: b.interestRate,
		CreatedAt:    b.createdAt,
		username:     DeriveUsername(b.owner),
		pin:          b.pin,
		movements:    movements,
	}, nil
}

// Username returns the login name derived from the owner.
func (a *Account) Username() string {
	return a.username
}

// FirstName returns the first word of the owner, used for greetings.
func (a *Account) FirstName() string {
	first, _, _ := strings.Cut(a.Owner, " ")
	return first
}

// MatchesPin reports whether pin equals the account's pin.
func (a *Account) MatchesPin(pin int) bool {
	return a.pin == pin
}

// Movements returns a copy of the history in chronological order.
func (a *Account) Movements() []decimal.Decimal {
	return slices.Clone(a.movements)
}

// Append adds a movement at the end of the history.
func (a *Account) Append(amount decimal.Decimal) {
	a.movements = append(a.movements, amount)
}

// MarkClosed flags the account as removed from the book. Every session
// holding it stops reporting it from then on.
func (a *Account) MarkClosed() {
	a.closed.Store(true)
}

// Closed reports whether the account has been removed from the book.
func (a *Account) Closed() bool {
	return a.closed.Load()
}

// Balance returns the sum of all movements.
func (a *Account) Balance() decimal.Decimal {
	return ComputeBalance(a.movements)
}

// Summary returns income, expense and interest totals under rules.
func (a *Account) Summary(rules Rules) Summary {
	return rules.Summary(a.movements, a.InterestRate)
}

// ValidateTransfer checks every transfer precondition against the recipient
// dest, which may be nil when the recipient username was not found.
func (a *Account) ValidateTransfer(dest *Account, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return reject(ErrTransferRejected, ErrAmountMustBePositive)
	}
	if dest == nil {
		return reject(ErrTransferRejected, ErrRecipientNotFound)
	}
	if dest.username == a.username {
		return reject(ErrTransferRejected, ErrCannotTransferToSameAccount)
	}
	if a.Balance().LessThan(amount) {
		return reject(ErrTransferRejected, ErrInsufficientFunds)
	}
	return nil
}

// ValidateLoan checks the loan eligibility rule for amount.
func (a *Account) ValidateLoan(rules Rules, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return reject(ErrLoanRejected, ErrAmountMustBePositive)
	}
	if !rules.QualifiesForLoan(a.movements, amount) {
		return reject(ErrLoanRejected, ErrNoQualifyingDeposit)
	}
	return nil
}

// ValidateClose checks that both confirmation credentials match the account.
func (a *Account) ValidateClose(username string, pin int) error {
	if username != a.username || !a.MatchesPin(pin) {
		return reject(ErrCloseRejected, ErrCredentialMismatch)
	}
	return nil
}

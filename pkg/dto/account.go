package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountRead is a read-optimized snapshot of the logged-in account, built
// fresh from the movement history on every query.
type AccountRead struct {
	ID            uuid.UUID
	Owner         string
	FirstName     string
	Username      string
	Movements     []decimal.Decimal // in the order selected by SortAscending
	SortAscending bool
	Balance       decimal.Decimal
	Income        decimal.Decimal
	Expense       decimal.Decimal
	Interest      decimal.Decimal
	InterestRate  decimal.Decimal
	CreatedAt     time.Time
}

package account

import (
	"slices"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Summary holds the aggregate figures derived from a movement history.
// It is never stored on the account; recompute it with ComputeSummary.
type Summary struct {
	Income   decimal.Decimal
	Expense  decimal.Decimal
	Interest decimal.Decimal
}

// Rules carries the two tunable constants of the ledger.
type Rules struct {
	// LoanQualifyingRatio is the share of a requested loan that a single
	// existing movement must reach for the loan to be granted.
	LoanQualifyingRatio decimal.Decimal
	// MinInterestPayout is the smallest per-deposit interest that counts
	// towards the interest total.
	MinInterestPayout decimal.Decimal
}

// DefaultRules returns a 10% loan qualifying ratio and a minimum interest
// payout of 1 per deposit.
func DefaultRules() Rules {
	return Rules{
		LoanQualifyingRatio: decimal.NewFromFloat(0.1),
		MinInterestPayout:   decimal.NewFromInt(1),
	}
}

// ComputeBalance returns the sum of all movements, zero for an empty history.
func ComputeBalance(movements []decimal.Decimal) decimal.Decimal {
	if len(movements) == 0 {
		return decimal.Zero
	}
	return decimal.Sum(movements[0], movements[1:]...)
}

// ComputeSummary derives income, expense and interest using DefaultRules.
func ComputeSummary(movements []decimal.Decimal, interestRate decimal.Decimal) Summary {
	return DefaultRules().Summary(movements, interestRate)
}

// Summary derives income, expense and interest totals. Interest is earned per
// deposit as deposit*rate/100 and each contribution below MinInterestPayout
// is dropped individually.
func (r Rules) Summary(movements []decimal.Decimal, interestRate decimal.Decimal) Summary {
	s := Summary{Income: decimal.Zero, Expense: decimal.Zero, Interest: decimal.Zero}
	for _, m := range movements {
		switch {
		case m.IsPositive():
			s.Income = s.Income.Add(m)
			interest := m.Mul(interestRate).Div(hundred)
			if interest.GreaterThanOrEqual(r.MinInterestPayout) {
				s.Interest = s.Interest.Add(interest)
			}
		case m.IsNegative():
			s.Expense = s.Expense.Add(m)
		}
	}
	s.Expense = s.Expense.Abs()
	return s
}

// QualifiesForLoan reports whether amount is positive and at least one
// movement is greater than or equal to amount*LoanQualifyingRatio.
func (r Rules) QualifiesForLoan(movements []decimal.Decimal, amount decimal.Decimal) bool {
	if !amount.IsPositive() {
		return false
	}
	threshold := amount.Mul(r.LoanQualifyingRatio)
	return slices.ContainsFunc(movements, func(m decimal.Decimal) bool {
		return m.GreaterThanOrEqual(threshold)
	})
}

// SortedAscending returns a copy of movements ordered from the smallest to the
// largest amount. The input slice is left untouched.
func SortedAscending(movements []decimal.Decimal) []decimal.Decimal {
	out := slices.Clone(movements)
	slices.SortStableFunc(out, func(a, b decimal.Decimal) int {
		return a.Cmp(b)
	})
	if out == nil {
		out = []decimal.Decimal{}
	}
	return out
}

// Kind classifies a movement for presentation.
type Kind string

const (
	KindDeposit    Kind = "deposit"
	KindWithdrawal Kind = "withdrawal"
)

// MovementKind reports whether m is a deposit or a withdrawal. Zero counts as
// a withdrawal, matching how the movement list has always labelled it.
func MovementKind(m decimal.Decimal) Kind {
	if m.IsPositive() {
		return KindDeposit
	}
	return KindWithdrawal
}

package account

import "github.com/shopspring/decimal"

// Entry is one signed movement destined for the account named Username.
type Entry struct {
	Username string
	Amount   decimal.Decimal
}

// Delta is a set of movements that must be applied all-or-nothing.
type Delta struct {
	Entries []Entry
}

// TransferDelta moves amount from one username to another.
func TransferDelta(from, to string, amount decimal.Decimal) Delta {
	return Delta{Entries: []Entry{
		{Username: from, Amount: amount.Neg()},
		{Username: to, Amount: amount},
	}}
}

// LoanDelta credits amount to username.
func LoanDelta(username string, amount decimal.Decimal) Delta {
	return Delta{Entries: []Entry{{Username: username, Amount: amount}}}
}

// Net returns the sum of all entries. A transfer nets to zero.
func (d Delta) Net() decimal.Decimal {
	net := decimal.Zero
	for _, e := range d.Entries {
		net = net.Add(e.Amount)
	}
	return net
}

package events

import "github.com/shopspring/decimal"

// SessionStartedEvent is emitted after a successful login.
type SessionStartedEvent struct {
	FlowEvent
}

// SessionEndedEvent is emitted after an explicit logout.
type SessionEndedEvent struct {
	FlowEvent
}

// TransferCompletedEvent is emitted once both legs of a transfer are committed.
// Username is the sender.
type TransferCompletedEvent struct {
	FlowEvent
	Recipient string
	Amount    decimal.Decimal
}

// LoanGrantedEvent is emitted once a loan movement is committed.
type LoanGrantedEvent struct {
	FlowEvent
	Amount decimal.Decimal
}

// AccountClosedEvent is emitted once the account is removed and its session cleared.
type AccountClosedEvent struct {
	FlowEvent
}

func (e SessionStartedEvent) Type() string    { return EventTypeSessionStarted.String() }
func (e SessionEndedEvent) Type() string      { return EventTypeSessionEnded.String() }
func (e TransferCompletedEvent) Type() string { return EventTypeTransferCompleted.String() }
func (e LoanGrantedEvent) Type() string       { return EventTypeLoanGranted.String() }
func (e AccountClosedEvent) Type() string     { return EventTypeAccountClosed.String() }

package events

// EventType represents the type of an event in the system.
type EventType string

// Event type constants
const (
	// Session events
	EventTypeSessionStarted EventType = "Session.Started"
	EventTypeSessionEnded   EventType = "Session.Ended"

	// Ledger events
	EventTypeTransferCompleted EventType = "Transfer.Completed"
	EventTypeLoanGranted       EventType = "Loan.Granted"

	// Lifecycle events
	EventTypeAccountClosed EventType = "Account.Closed"
)

// String returns the string representation of the event type.
func (et EventType) String() string {
	return string(et)
}

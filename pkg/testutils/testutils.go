package testutils

import (
	"context"
	"io"
	"log/slog"
	"testing"

	infraeventbus "github.com/Badi1298/Bankist/infra/eventbus"
	infrarepo "github.com/Badi1298/Bankist/infra/repository"
	fixturesaccounts "github.com/Badi1298/Bankist/internal/fixtures/accounts"
	"github.com/Badi1298/Bankist/pkg/config"
	"github.com/Badi1298/Bankist/pkg/domain/account"
	"github.com/Badi1298/Bankist/pkg/repository"
	accountsvc "github.com/Badi1298/Bankist/pkg/service/account"
	"github.com/Badi1298/Bankist/pkg/service/auth"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// Ledger bundles a fully wired in-memory ledger seeded with the demo accounts.
type Ledger struct {
	Uow     *infrarepo.UoW
	Bus     *infraeventbus.MemoryEventBus
	Auth    *auth.Service
	Account *accountsvc.Service
	Logger  *slog.Logger
}

// DiscardLogger returns a logger that drops every record.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// NewLedger wires the memory store, the memory bus and both services, and
// seeds the embedded demo accounts.
func NewLedger(t *testing.T) *Ledger {
	t.Helper()
	logger := DiscardLogger()
	uow := infrarepo.NewUoW(infrarepo.NewStore(), logger)
	bus := infraeventbus.NewWithMemory(logger)

	l := &Ledger{
		Uow:     uow,
		Bus:     bus,
		Auth:    auth.New(uow, bus, logger),
		Account: accountsvc.NewService(config.Deps{Uow: uow, EventBus: bus, Logger: logger}),
		Logger:  logger,
	}

	accs, err := fixturesaccounts.LoadAccountsCSV("")
	require.NoError(t, err)
	require.NoError(t, l.Account.Seed(context.Background(), accs...))
	bus.ClearPublished()
	return l
}

// Get returns the stored account for username.
func (l *Ledger) Get(t *testing.T, username string) (*account.Account, error) {
	t.Helper()
	var acc *account.Account
	err := l.Uow.Do(context.Background(), func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		acc, err = repo.Get(username)
		return err
	})
	return acc, err
}

// Snapshot returns every account's movements keyed by username.
func (l *Ledger) Snapshot(t *testing.T) map[string][]decimal.Decimal {
	t.Helper()
	out := make(map[string][]decimal.Decimal)
	require.NoError(t, l.Uow.Do(context.Background(), func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		accs, err := repo.List()
		for _, a := range accs {
			out[a.Username()] = a.Movements()
		}
		return err
	}))
	return out
}

// Total returns the sum of all movements across the book.
func (l *Ledger) Total(t *testing.T) decimal.Decimal {
	t.Helper()
	total := decimal.Zero
	for _, movs := range l.Snapshot(t) {
		total = total.Add(account.ComputeBalance(movs))
	}
	return total
}

// Dec parses s as a decimal and panics on malformed input.
func Dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

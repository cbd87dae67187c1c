package initializer

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	infra_eventbus "github.com/Badi1298/Bankist/infra/eventbus"
	infra_repository "github.com/Badi1298/Bankist/infra/repository"
	accountfixtures "github.com/Badi1298/Bankist/internal/fixtures/accounts"
	"github.com/Badi1298/Bankist/pkg/config"
	"github.com/Badi1298/Bankist/pkg/domain/events"
	accountsvc "github.com/Badi1298/Bankist/pkg/service/account"
	"github.com/Badi1298/Bankist/pkg/service/auth"
)

// Ledger is the wired application: the shared account book, its event bus and
// the services operating on it.
type Ledger struct {
	Deps    config.Deps
	Bus     *infra_eventbus.MemoryEventBus
	Auth    *auth.Service
	Account *accountsvc.Service
}

// InitializeDependencies builds the logger, the in-memory store and event bus,
// the services, and seeds the account book from the configured fixtures.
func InitializeDependencies(ctx context.Context, cfg *config.App, logOut io.Writer) (*Ledger, error) {
	logger := setupLogger(cfg.Log, logOut)

	uow := infra_repository.NewUoW(infra_repository.NewStore(), logger)
	bus := infra_eventbus.NewWithMemory(logger)
	registerAuditHandlers(bus, logger)

	deps := config.Deps{
		Uow:      uow,
		EventBus: bus,
		Logger:   logger,
		Config:   cfg,
	}
	ledger := &Ledger{
		Deps:    deps,
		Bus:     bus,
		Auth:    auth.New(uow, bus, logger),
		Account: accountsvc.NewService(deps),
	}

	logger.Info("Loading account fixtures", "path", cfg.Fixtures.AccountsPath)
	accounts, err := accountfixtures.LoadAccountsCSV(cfg.Fixtures.AccountsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load account fixtures: %w", err)
	}
	if err := ledger.Account.Seed(ctx, accounts...); err != nil {
		return nil, fmt.Errorf("failed to seed accounts: %w", err)
	}
	logger.Info("Successfully loaded account fixtures", "registered_count", len(accounts))

	return ledger, nil
}

// registerAuditHandlers logs every committed ledger event.
func registerAuditHandlers(bus *infra_eventbus.MemoryEventBus, logger *slog.Logger) {
	audit := func(_ context.Context, evt events.Event) error {
		attrs := []any{"type", evt.Type()}
		switch e := evt.(type) {
		case events.TransferCompletedEvent:
			attrs = append(attrs, "username", e.Username, "recipient", e.Recipient, "amount", e.Amount.String())
		case events.LoanGrantedEvent:
			attrs = append(attrs, "username", e.Username, "amount", e.Amount.String())
		case events.SessionStartedEvent:
			attrs = append(attrs, "username", e.Username)
		case events.SessionEndedEvent:
			attrs = append(attrs, "username", e.Username)
		case events.AccountClosedEvent:
			attrs = append(attrs, "username", e.Username)
		}
		logger.Debug("Ledger event", attrs...)
		return nil
	}
	for _, et := range []events.EventType{
		events.EventTypeSessionStarted,
		events.EventTypeSessionEnded,
		events.EventTypeTransferCompleted,
		events.EventTypeLoanGranted,
		events.EventTypeAccountClosed,
	} {
		bus.Register(et, audit)
	}
}

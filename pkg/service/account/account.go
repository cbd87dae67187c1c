// Package account provides the ledger operations available to a logged-in
// session: transfers, loans, closing the account, and the read side
// (balance, summary and the movement list in canonical or ascending order).
//
// Every operation runs inside one unit of work, so a rejected operation never
// leaves a partial change behind, and emits a domain event only after its
// changes are committed.
package account

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Badi1298/Bankist/pkg/config"
	"github.com/Badi1298/Bankist/pkg/domain/account"
	"github.com/Badi1298/Bankist/pkg/domain/events"
	"github.com/Badi1298/Bankist/pkg/dto"
	"github.com/Badi1298/Bankist/pkg/eventbus"
	"github.com/Badi1298/Bankist/pkg/mapper"
	"github.com/Badi1298/Bankist/pkg/repository"
	"github.com/Badi1298/Bankist/pkg/session"
	"github.com/shopspring/decimal"
)

// Service provides business logic for ledger operations.
type Service struct {
	uow    repository.UnitOfWork
	bus    eventbus.Bus
	rules  account.Rules
	logger *slog.Logger
}

// NewService creates a new Service with the provided dependencies. Ledger
// rules come from deps.Config and fall back to account.DefaultRules.
func NewService(deps config.Deps) *Service {
	rules := account.DefaultRules()
	if deps.Config != nil && deps.Config.Ledger != nil {
		rules = deps.Config.Ledger.Rules()
	}
	return &Service{
		uow:    deps.Uow,
		bus:    deps.EventBus,
		rules:  rules,
		logger: deps.Logger,
	}
}

// Seed adds the initial accounts to the book in one unit of work. Either all
// of them are stored or none.
func (s *Service) Seed(ctx context.Context, accounts ...*account.Account) error {
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		for _, a := range accounts {
			if err := repo.Create(a); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Seed failed", "error", err)
		return err
	}
	s.logger.Info("Seed successful", "accounts", len(accounts))
	return nil
}

// Transfer moves amount from the session's account to the account named
// toUsername. On any failed precondition it returns an error wrapping
// account.ErrTransferRejected and neither history changes.
func (s *Service) Transfer(
	ctx context.Context,
	sess *session.Session,
	toUsername string,
	amount decimal.Decimal,
) error {
	current, err := sess.Account()
	if err != nil {
		return err
	}
	logger := s.logger.With("from", current.Username(), "to", toUsername, "amount", amount.String())
	logger.Info("Transfer started")

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		sender, err := ownAccount(repo, current.Username())
		if err != nil {
			return err
		}
		receiver, err := repo.Get(toUsername)
		if err != nil && !errors.Is(err, account.ErrAccountNotFound) {
			return err
		}
		if err := sender.ValidateTransfer(receiver, amount); err != nil {
			return err
		}
		return repo.Apply(account.TransferDelta(sender.Username(), toUsername, amount))
	})
	if err != nil {
		logger.Warn("Transfer rejected", "error", err)
		return err
	}

	logger.Info("Transfer successful")
	s.emit(ctx, events.TransferCompletedEvent{
		FlowEvent: events.NewFlowEvent(current.Username()),
		Recipient: toUsername,
		Amount:    amount,
	})
	return nil
}

// RequestLoan credits amount to the session's account when some existing
// movement reaches amount times the loan qualifying ratio. Otherwise it returns
// an error wrapping account.ErrLoanRejected.
func (s *Service) RequestLoan(
	ctx context.Context,
	sess *session.Session,
	amount decimal.Decimal,
) error {
	current, err := sess.Account()
	if err != nil {
		return err
	}
	logger := s.logger.With("username", current.Username(), "amount", amount.String())
	logger.Info("RequestLoan started")

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		acc, err := ownAccount(repo, current.Username())
		if err != nil {
			return err
		}
		if err := acc.ValidateLoan(s.rules, amount); err != nil {
			return err
		}
		return repo.Apply(account.LoanDelta(acc.Username(), amount))
	})
	if err != nil {
		logger.Warn("RequestLoan rejected", "error", err)
		return err
	}

	logger.Info("RequestLoan successful")
	s.emit(ctx, events.LoanGrantedEvent{
		FlowEvent: events.NewFlowEvent(current.Username()),
		Amount:    amount,
	})
	return nil
}

// Close removes the session's account from the book when both confirmation
// credentials match it. The removal and the end of the session are committed
// together; on mismatch it returns an error wrapping account.ErrCloseRejected.
func (s *Service) Close(
	ctx context.Context,
	sess *session.Session,
	confirmUsername string,
	confirmPin int,
) error {
	current, err := sess.Account()
	if err != nil {
		return err
	}
	logger := s.logger.With("username", current.Username())
	logger.Info("Close started")

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		acc, err := ownAccount(repo, current.Username())
		if err != nil {
			return err
		}
		if err := acc.ValidateClose(confirmUsername, confirmPin); err != nil {
			return err
		}
		if err := repo.Delete(acc.Username()); err != nil {
			return err
		}
		uow.AfterCommit(sess.Clear)
		return nil
	})
	if err != nil {
		logger.Warn("Close rejected", "error", err)
		return err
	}

	logger.Info("Close successful")
	s.emit(ctx, events.AccountClosedEvent{FlowEvent: events.NewFlowEvent(current.Username())})
	return nil
}

// ToggleSort flips between the canonical and the ascending movement view and
// returns the movements in the newly selected order. The stored history is
// never reordered.
func (s *Service) ToggleSort(ctx context.Context, sess *session.Session) ([]decimal.Decimal, error) {
	if _, err := sess.Account(); err != nil {
		return nil, err
	}
	ascending := sess.ToggleSort()
	s.logger.Debug("ToggleSort", "ascending", ascending)
	return s.Movements(ctx, sess)
}

// Movements returns the session account's movements in the order currently
// selected by the session.
func (s *Service) Movements(ctx context.Context, sess *session.Session) ([]decimal.Decimal, error) {
	view, err := s.View(ctx, sess)
	if err != nil {
		return nil, err
	}
	return view.Movements, nil
}

// Balance returns the session account's balance, recomputed from its movements.
func (s *Service) Balance(ctx context.Context, sess *session.Session) (decimal.Decimal, error) {
	view, err := s.View(ctx, sess)
	if err != nil {
		return decimal.Zero, err
	}
	return view.Balance, nil
}

// Summary returns the session account's income, expense and interest totals.
func (s *Service) Summary(ctx context.Context, sess *session.Session) (account.Summary, error) {
	view, err := s.View(ctx, sess)
	if err != nil {
		return account.Summary{}, err
	}
	return account.Summary{Income: view.Income, Expense: view.Expense, Interest: view.Interest}, nil
}

// View derives everything presented for the session's account in one read.
func (s *Service) View(ctx context.Context, sess *session.Session) (view *dto.AccountRead, err error) {
	current, err := sess.Account()
	if err != nil {
		return nil, err
	}
	ascending := sess.SortAscending()

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		acc, err := ownAccount(repo, current.Username())
		if err != nil {
			return err
		}
		view = mapper.MapAccountToRead(acc, s.rules, ascending)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// ownAccount loads the session's account. An account removed by a commit that
// raced with the caller reads as the end of the session.
func ownAccount(repo repository.AccountRepository, username string) (*account.Account, error) {
	acc, err := repo.Get(username)
	if errors.Is(err, account.ErrAccountNotFound) {
		return nil, account.ErrNoSession
	}
	return acc, err
}

func (s *Service) emit(ctx context.Context, evt events.Event) {
	if err := s.bus.Emit(ctx, evt); err != nil {
		s.logger.Error("failed to emit event", "type", evt.Type(), "error", err)
	}
}

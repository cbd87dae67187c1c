package auth

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Badi1298/Bankist/pkg/domain/account"
	"github.com/Badi1298/Bankist/pkg/domain/events"
	"github.com/Badi1298/Bankist/pkg/eventbus"
	"github.com/Badi1298/Bankist/pkg/repository"
	"github.com/Badi1298/Bankist/pkg/session"
)

// Service is the authentication gate: it checks username and pin against the
// account book and establishes or ends a session.
type Service struct {
	uow    repository.UnitOfWork
	bus    eventbus.Bus
	logger *slog.Logger
}

func New(
	uow repository.UnitOfWork,
	bus eventbus.Bus,
	logger *slog.Logger,
) *Service {
	return &Service{uow: uow, bus: bus, logger: logger}
}

// Login looks the account up by exact username and compares the pin. Both an
// unknown username and a wrong pin yield account.ErrAuthFailure and leave sess
// untouched. On success sess references the stored account.
func (s *Service) Login(
	ctx context.Context,
	sess *session.Session,
	username string,
	pin int,
) (acc *account.Account, err error) {
	log := s.logger.With("context", "Login", "username", username)
	log.Debug("Login called")

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		found, err := repo.Get(username)
		if errors.Is(err, account.ErrAccountNotFound) {
			log.Debug("Login rejected: unknown username")
			return account.ErrAuthFailure
		}
		if err != nil {
			return err
		}
		if !found.MatchesPin(pin) {
			log.Debug("Login rejected: pin mismatch")
			return account.ErrAuthFailure
		}
		uow.AfterCommit(func() { sess.Start(found) })
		acc = found
		return nil
	})
	if err != nil {
		acc = nil
		log.Warn("Login failed", "error", err)
		return
	}

	log.Info("Login successful", "accountID", acc.ID)
	s.emit(ctx, events.SessionStartedEvent{FlowEvent: events.NewFlowEvent(username)})
	return
}

// Logout ends the session. It fails with account.ErrNoSession when nobody is
// logged in.
func (s *Service) Logout(ctx context.Context, sess *session.Session) error {
	acc, err := sess.Account()
	if err != nil {
		return err
	}
	sess.Clear()
	s.logger.Info("Logout successful", "username", acc.Username())
	s.emit(ctx, events.SessionEndedEvent{FlowEvent: events.NewFlowEvent(acc.Username())})
	return nil
}

func (s *Service) emit(ctx context.Context, evt events.Event) {
	if err := s.bus.Emit(ctx, evt); err != nil {
		s.logger.Error("failed to emit event", "type", evt.Type(), "error", err)
	}
}

package config

import (
	"log/slog"

	"github.com/Badi1298/Bankist/pkg/eventbus"
	"github.com/Badi1298/Bankist/pkg/repository"
)

// Deps holds all infrastructure dependencies for building the services.
type Deps struct {
	Uow      repository.UnitOfWork
	EventBus eventbus.Bus
	Logger   *slog.Logger
	Config   *App
}

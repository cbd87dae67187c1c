package config

import (
	"errors"
	"fmt"

	"github.com/Badi1298/Bankist/pkg/domain/account"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

type Log struct {
	Level      int    `envconfig:"LEVEL" default:"0"`
	Format     string `envconfig:"FORMAT" default:"text" validate:"oneof=json text"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"2006-01-02 15:04:05"`
	Prefix     string `envconfig:"PREFIX" default:"[bankist]"`
}

// Fixtures points at the seed data. An empty path selects the embedded demo accounts.
type Fixtures struct {
	AccountsPath string `envconfig:"ACCOUNTS_PATH" default:""`
}

type Ledger struct {
	LoanQualifyingRatio decimal.Decimal `envconfig:"LOAN_QUALIFYING_RATIO" default:"0.1"`
	MinInterestPayout   decimal.Decimal `envconfig:"MIN_INTEREST_PAYOUT" default:"1"`
}

// Rules converts the ledger settings into domain rules.
func (l *Ledger) Rules() account.Rules {
	return account.Rules{
		LoanQualifyingRatio: l.LoanQualifyingRatio,
		MinInterestPayout:   l.MinInterestPayout,
	}
}

type App struct {
	Env      string    `envconfig:"APP_ENV" default:"development" validate:"oneof=development test production"`
	Log      *Log      `envconfig:"LOG" validate:"required"`
	Fixtures *Fixtures `envconfig:"FIXTURES" validate:"required"`
	Ledger   *Ledger   `envconfig:"LEDGER" validate:"required"`
}

// Validate checks the loaded configuration.
func (a *App) Validate() error {
	if err := validator.New().Struct(a); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if !a.Ledger.LoanQualifyingRatio.IsPositive() {
		return errors.New("invalid config: LEDGER_LOAN_QUALIFYING_RATIO must be positive")
	}
	if a.Ledger.MinInterestPayout.IsNegative() {
		return errors.New("invalid config: LEDGER_MIN_INTEREST_PAYOUT must not be negative")
	}
	return nil
}

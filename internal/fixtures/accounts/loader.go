package accounts

import (
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/Badi1298/Bankist/pkg/domain/account"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

//go:embed accounts.csv
var accountsCSV string

const expectedColumns = 4

type row struct {
	Owner        string   `validate:"required"`
	InterestRate string   `validate:"required,numeric"`
	Pin          string   `validate:"required,number"`
	Movements    []string `validate:"dive,numeric"`
}

// LoadAccountsCSV loads the seed accounts from a CSV file or, when path is
// empty, from the embedded demo accounts.
//
// Columns: owner, interest_rate, pin, movements. Movements are space separated
// signed amounts in chronological order.
func LoadAccountsCSV(path string) ([]*account.Account, error) {
	var r io.Reader

	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open file: %w", err)
		}
		defer func() {
			_ = f.Close()
		}()
		r = f
	} else {
		r = strings.NewReader(accountsCSV)
	}

	return parseAccountsCSV(r)
}

func parseAccountsCSV(r io.Reader) ([]*account.Account, error) {
	csvReader := csv.NewReader(r)
	csvReader.FieldsPerRecord = -1
	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errors.New("invalid CSV format: missing header")
	}
	if len(records[0]) < expectedColumns {
		return nil, fmt.Errorf(
			"invalid CSV format: expected at least %d columns, got %d",
			expectedColumns,
			len(records[0]),
		)
	}

	validate := validator.New()
	accs := make([]*account.Account, 0, len(records)-1)
	for i, rec := range records[1:] {
		line := i + 2
		if len(rec) < expectedColumns {
			return nil, fmt.Errorf("line %d: expected %d columns, got %d", line, expectedColumns, len(rec))
		}
		rw := row{
			Owner:        strings.TrimSpace(rec[0]),
			InterestRate: strings.TrimSpace(rec[1]),
			Pin:          strings.TrimSpace(rec[2]),
			Movements:    strings.Fields(rec[3]),
		}
		if err := validate.Struct(rw); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		acc, err := rw.build()
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		accs = append(accs, acc)
	}
	return accs, nil
}

func (rw row) build() (*account.Account, error) {
	rate, err := decimal.NewFromString(rw.InterestRate)
	if err != nil {
		return nil, fmt.Errorf("interest rate: %w", err)
	}
	pin, err := strconv.Atoi(rw.Pin)
	if err != nil {
		return nil, fmt.Errorf("pin: %w", err)
	}
	movements := make([]decimal.Decimal, 0, len(rw.Movements))
	for _, m := range rw.Movements {
		amount, err := decimal.NewFromString(m)
		if err != nil {
			return nil, fmt.Errorf("movement %q: %w", m, err)
		}
		movements = append(movements, amount)
	}
	return account.New().
		WithOwner(rw.Owner).
		WithInterestRate(rate).
		WithPin(pin).
		WithMovements(movements...).
		Build()
}

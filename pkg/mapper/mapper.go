package mapper

import (
	"github.com/Badi1298/Bankist/pkg/domain/account"
	"github.com/Badi1298/Bankist/pkg/dto"
)

// MapAccountToRead maps a domain Account to a dto.AccountRead. Movements are
// returned in ascending order when ascending is set, otherwise in the stored
// chronological order.
func MapAccountToRead(acc *account.Account, rules account.Rules, ascending bool) *dto.AccountRead {
	movements := acc.Movements()
	if ascending {
		movements = account.SortedAscending(movements)
	}
	summary := acc.Summary(rules)
	return &dto.AccountRead{
		ID:            acc.ID,
		Owner:         acc.Owner,
		FirstName:     acc.FirstName(),
		Username:      acc.Username(),
		Movements:     movements,
		SortAscending: ascending,
		Balance:       acc.Balance(),
		Income:        summary.Income,
		Expense:       summary.Expense,
		Interest:      summary.Interest,
		InterestRate:  acc.InterestRate,
		CreatedAt:     acc.CreatedAt,
	}
}

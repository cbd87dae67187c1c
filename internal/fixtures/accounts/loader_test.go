package accounts_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Badi1298/Bankist/internal/fixtures/accounts"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "accounts.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadAccountsCSV_Embedded(t *testing.T) {
	accs, err := accounts.LoadAccountsCSV("")
	require.NoError(t, err)
	require.Len(t, accs, 5)

	usernames := make([]string, len(accs))
	for i, a := range accs {
		usernames[i] = a.Username()
	}
	assert.Equal(t, []string{"js", "jd", "stw", "ss", "sd"}, usernames)

	jonas := accs[0]
	assert.Equal(t, "Jonas Schmedtmann", jonas.Owner)
	assert.True(t, jonas.MatchesPin(1111))
	assert.True(t, jonas.InterestRate.Equal(decimal.RequireFromString("1.2")))
	assert.True(t, jonas.Balance().Equal(decimal.NewFromInt(3840)))
	assert.Len(t, jonas.Movements(), 8)

	serban := accs[4]
	assert.True(t, serban.MatchesPin(1234))
}

func TestLoadAccountsCSV_File(t *testing.T) {
	path := writeCSV(t, `owner,interest_rate,pin,movements
Ada Lovelace,2.5,1815,100.50 -20.25
New Customer,0,9999,
`)
	accs, err := accounts.LoadAccountsCSV(path)
	require.NoError(t, err)
	require.Len(t, accs, 2)

	assert.Equal(t, "al", accs[0].Username())
	assert.True(t, accs[0].Balance().Equal(decimal.RequireFromString("80.25")))
	assert.Empty(t, accs[1].Movements())
}

func TestLoadAccountsCSV_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		content string
	}{
		{"empty file", ""},
		{"short header", "owner,pin\n"},
		{"short row", "owner,interest_rate,pin,movements\nAda Lovelace,1\n"},
		{"missing owner", "owner,interest_rate,pin,movements\n,1,1111,10\n"},
		{"non numeric pin", "owner,interest_rate,pin,movements\nAda Lovelace,1,abcd,10\n"},
		{"negative pin", "owner,interest_rate,pin,movements\nAda Lovelace,1,-1,10\n"},
		{"non numeric rate", "owner,interest_rate,pin,movements\nAda Lovelace,high,1111,10\n"},
		{"negative rate", "owner,interest_rate,pin,movements\nAda Lovelace,-1,1111,10\n"},
		{"bad movement", "owner,interest_rate,pin,movements\nAda Lovelace,1,1111,10 ten\n"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := accounts.LoadAccountsCSV(writeCSV(t, tc.content))
			assert.Error(t, err)
		})
	}
}

func TestLoadAccountsCSV_MissingFile(t *testing.T) {
	_, err := accounts.LoadAccountsCSV(filepath.Join(t.TempDir(), "nope.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/Badi1298/Bankist/infra/initializer"
	"github.com/Badi1298/Bankist/pkg/config"
	"github.com/fatih/color"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func run(t *testing.T, input string) string {
	t.Helper()
	cfg := &config.App{
		Env:      "test",
		Log:      &config.Log{Format: "text", Prefix: "[bankist]"},
		Fixtures: &config.Fixtures{},
		Ledger: &config.Ledger{
			LoanQualifyingRatio: decimal.RequireFromString("0.1"),
			MinInterestPayout:   decimal.NewFromInt(1),
		},
	}
	ledger, err := initializer.InitializeDependencies(context.Background(), cfg, io.Discard)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, newREPL(ledger, strings.NewReader(input), &out).Run(context.Background()))
	return out.String()
}

func TestREPL_LoginAndOperate(t *testing.T) {
	out := run(t, strings.Join([]string{
		"login js 1111",
		"transfer jd 100",
		"loan 2000",
		"summary",
		"quit",
	}, "\n"))

	assert.Contains(t, out, "Welcome back, Jonas")
	assert.Contains(t, out, "Balance: 3840.00")
	assert.Contains(t, out, "Transferred 100.00 to jd")
	assert.Contains(t, out, "Balance: 3740.00")
	assert.Contains(t, out, "Loan of 2000.00 granted")
	assert.Contains(t, out, "Balance: 5740.00")
	assert.Contains(t, out, "js> ")
}

func TestREPL_PinPromptedFromNextLine(t *testing.T) {
	out := run(t, "login jd\n2222\nbalance\n")

	assert.Contains(t, out, "PIN: ")
	assert.Contains(t, out, "Welcome back, Jessica")
	assert.Contains(t, out, "Balance: 11720.00")
}

func TestREPL_Rejections(t *testing.T) {
	out := run(t, strings.Join([]string{
		"balance",
		"login js 9999",
		"login js 1111",
		"transfer js 10",
		"loan 40000",
		"close jd 1111",
		"transfer",
		"frobnicate",
	}, "\n"))

	assert.Contains(t, out, "Please log in first")
	assert.Contains(t, out, "Wrong username or PIN")
	assert.Contains(t, out, "cannot transfer to same account")
	assert.Contains(t, out, "no qualifying deposit")
	assert.Contains(t, out, "credential mismatch")
	assert.Contains(t, out, "invalid arguments: transfer <user> <amount>")
	assert.Contains(t, out, `unknown command "frobnicate"`)
}

func TestREPL_SortAndClose(t *testing.T) {
	out := run(t, strings.Join([]string{
		"login ss 4444",
		"sort",
		"close ss 4444",
		"movements",
		"login ss 4444",
	}, "\n"))

	start := strings.Index(out, "ss> ")
	end := strings.Index(out, "Account closed")
	require.True(t, start >= 0 && end > start)
	sorted := out[start:end]
	assert.Regexp(t, `(?s)1 deposit\s+50\.00.*2 deposit\s+90\.00.*3 deposit\s+430\.00`, sorted)
	assert.Contains(t, out, "Account closed")
	assert.Contains(t, out, "Please log in first")
	assert.Contains(t, out, "Wrong username or PIN")
}

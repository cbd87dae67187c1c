package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Badi1298/Bankist/infra/initializer"
	"github.com/Badi1298/Bankist/pkg/domain/account"
	"github.com/Badi1298/Bankist/pkg/session"
	"github.com/fatih/color"
	"github.com/shopspring/decimal"
)

const usage = `Commands:
  login <user> [pin]         start a session (pin is prompted when omitted)
  transfer <user> <amount>   send money to another account
  loan <amount>              request a loan
  close <user> <pin>         close the logged-in account
  sort                       toggle ascending movement order
  movements                  list movements
  balance                    show the current balance
  summary                    show income, expense and interest
  logout                     end the session
  help                       show this help
  quit                       exit`

var (
	depositColor    = color.New(color.FgGreen)
	withdrawalColor = color.New(color.FgRed)
	headerColor     = color.New(color.FgCyan, color.Bold)
	errorColor      = color.New(color.FgRed, color.Bold)
	okColor         = color.New(color.FgGreen)
)

var errUsage = errors.New("invalid arguments")

type repl struct {
	ledger  *initializer.Ledger
	sess    *session.Session
	in      *bufio.Scanner
	out     io.Writer
	readPin func() (string, error)
}

func newREPL(ledger *initializer.Ledger, in io.Reader, out io.Writer) *repl {
	r := &repl{
		ledger: ledger,
		sess:   session.New(),
		in:     bufio.NewScanner(in),
		out:    out,
	}
	r.readPin = r.readLine
	return r
}

func (r *repl) readLine() (string, error) {
	if !r.in.Scan() {
		if err := r.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(r.in.Text()), nil
}

func (r *repl) prompt() {
	if acc, err := r.sess.Account(); err == nil {
		fmt.Fprintf(r.out, "%s> ", acc.Username())
		return
	}
	fmt.Fprint(r.out, "> ")
}

// Run reads commands until quit, end of input or ctx is cancelled.
func (r *repl) Run(ctx context.Context) error {
	headerColor.Fprintln(r.out, "Bankist. Type 'help' for commands.")
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		r.prompt()
		line, err := r.readLine()
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(r.out)
			return nil
		}
		if err != nil {
			return err
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "quit" || fields[0] == "exit" {
			return nil
		}
		if err := r.exec(ctx, fields[0], fields[1:]); err != nil {
			r.printError(err)
		}
	}
}

func (r *repl) exec(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "help":
		fmt.Fprintln(r.out, usage)
		return nil
	case "login":
		return r.login(ctx, args)
	case "logout":
		if err := r.ledger.Auth.Logout(ctx, r.sess); err != nil {
			return err
		}
		okColor.Fprintln(r.out, "Logged out")
		return nil
	case "transfer":
		if len(args) != 2 {
			return fmt.Errorf("%w: transfer <user> <amount>", errUsage)
		}
		amount, err := parseAmount(args[1])
		if err != nil {
			return err
		}
		if err := r.ledger.Account.Transfer(ctx, r.sess, args[0], amount); err != nil {
			return err
		}
		okColor.Fprintf(r.out, "Transferred %s to %s\n", amount.StringFixed(2), args[0])
		return r.balance(ctx)
	case "loan":
		if len(args) != 1 {
			return fmt.Errorf("%w: loan <amount>", errUsage)
		}
		amount, err := parseAmount(args[0])
		if err != nil {
			return err
		}
		if err := r.ledger.Account.RequestLoan(ctx, r.sess, amount); err != nil {
			return err
		}
		okColor.Fprintf(r.out, "Loan of %s granted\n", amount.StringFixed(2))
		return r.balance(ctx)
	case "close":
		if len(args) != 2 {
			return fmt.Errorf("%w: close <user> <pin>", errUsage)
		}
		pin, err := parsePin(args[1])
		if err != nil {
			return err
		}
		if err := r.ledger.Account.Close(ctx, r.sess, args[0], pin); err != nil {
			return err
		}
		okColor.Fprintln(r.out, "Account closed")
		return nil
	case "sort":
		movements, err := r.ledger.Account.ToggleSort(ctx, r.sess)
		if err != nil {
			return err
		}
		r.printMovements(movements)
		return nil
	case "movements":
		movements, err := r.ledger.Account.Movements(ctx, r.sess)
		if err != nil {
			return err
		}
		r.printMovements(movements)
		return nil
	case "balance":
		return r.balance(ctx)
	case "summary":
		summary, err := r.ledger.Account.Summary(ctx, r.sess)
		if err != nil {
			return err
		}
		depositColor.Fprintf(r.out, "In       %12s\n", summary.Income.StringFixed(2))
		withdrawalColor.Fprintf(r.out, "Out      %12s\n", summary.Expense.StringFixed(2))
		fmt.Fprintf(r.out, "Interest %12s\n", summary.Interest.StringFixed(2))
		return nil
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}
}

func (r *repl) login(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("%w: login <user> [pin]", errUsage)
	}
	raw := ""
	if len(args) == 2 {
		raw = args[1]
	} else {
		fmt.Fprint(r.out, "PIN: ")
		var err error
		if raw, err = r.readPin(); err != nil {
			return err
		}
	}
	pin, err := parsePin(raw)
	if err != nil {
		return err
	}
	acc, err := r.ledger.Auth.Login(ctx, r.sess, args[0], pin)
	if err != nil {
		return err
	}
	headerColor.Fprintf(r.out, "Welcome back, %s\n", acc.FirstName())
	view, err := r.ledger.Account.View(ctx, r.sess)
	if err != nil {
		return err
	}
	r.printMovements(view.Movements)
	fmt.Fprintf(r.out, "Balance: %s\n", view.Balance.StringFixed(2))
	return nil
}

func (r *repl) balance(ctx context.Context) error {
	balance, err := r.ledger.Account.Balance(ctx, r.sess)
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "Balance: %s\n", balance.StringFixed(2))
	return nil
}

func (r *repl) printMovements(movements []decimal.Decimal) {
	for i, m := range movements {
		c := depositColor
		if account.MovementKind(m) == account.KindWithdrawal {
			c = withdrawalColor
		}
		c.Fprintf(r.out, "%3d %-10s %12s\n", i+1, account.MovementKind(m), m.StringFixed(2))
	}
}

func (r *repl) printError(err error) {
	msg := err.Error()
	switch {
	case errors.Is(err, account.ErrNoSession):
		msg = "Please log in first"
	case errors.Is(err, account.ErrAuthFailure):
		msg = "Wrong username or PIN"
	}
	errorColor.Fprintln(r.out, msg)
}

func parseAmount(s string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: amount %q is not a number", errUsage, s)
	}
	return amount, nil
}

func parsePin(s string) (int, error) {
	pin, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: pin %q is not a number", errUsage, s)
	}
	return pin, nil
}

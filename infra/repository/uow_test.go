package repository_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	infrarepo "github.com/Badi1298/Bankist/infra/repository"
	"github.com/Badi1298/Bankist/pkg/domain/account"
	"github.com/Badi1298/Bankist/pkg/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type UoWTestSuite struct {
	suite.Suite
	uow *infrarepo.UoW
	ctx context.Context
}

func (s *UoWTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.uow = infrarepo.NewUoW(infrarepo.NewStore(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.seed(
		build(s.T(), "Jonas Schmedtmann", 1111, 200, 450, -400, 3000, -650, -130, 70, 1300),
		build(s.T(), "Jessica Davis", 2222, 5000, 3400, -150, -790, -3210, -1000, 8500, -30),
	)
}

func TestUoWTestSuite(t *testing.T) {
	suite.Run(t, new(UoWTestSuite))
}

func build(t *testing.T, owner string, pin int, movements ...int64) *account.Account {
	t.Helper()
	movs := make([]decimal.Decimal, len(movements))
	for i, m := range movements {
		movs[i] = decimal.NewFromInt(m)
	}
	acc, err := account.New().WithOwner(owner).WithPin(pin).WithMovements(movs...).Build()
	require.NoError(t, err)
	return acc
}

func (s *UoWTestSuite) seed(accs ...*account.Account) {
	err := s.uow.Do(s.ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		for _, a := range accs {
			if err := repo.Create(a); err != nil {
				return err
			}
		}
		return nil
	})
	s.Require().NoError(err)
}

func (s *UoWTestSuite) get(username string) (acc *account.Account, err error) {
	err = s.uow.Do(s.ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		acc, err = repo.Get(username)
		return err
	})
	return
}

func (s *UoWTestSuite) total() decimal.Decimal {
	sum := decimal.Zero
	err := s.uow.Do(s.ctx, func(uow repository.UnitOfWork) error {
		repo, _ := uow.AccountRepository()
		accs, err := repo.List()
		for _, a := range accs {
			sum = sum.Add(a.Balance())
		}
		return err
	})
	s.Require().NoError(err)
	return sum
}

func (s *UoWTestSuite) TestRepositoryOutsideDo() {
	_, err := s.uow.AccountRepository()
	s.ErrorIs(err, infrarepo.ErrNoTransaction)
}

func (s *UoWTestSuite) TestListKeepsInsertionOrder() {
	err := s.uow.Do(s.ctx, func(uow repository.UnitOfWork) error {
		repo, _ := uow.AccountRepository()
		accs, err := repo.List()
		s.Require().Len(accs, 2)
		s.Equal("js", accs[0].Username())
		s.Equal("jd", accs[1].Username())
		return err
	})
	s.NoError(err)
}

func (s *UoWTestSuite) TestCreateDuplicateUsername() {
	err := s.uow.Do(s.ctx, func(uow repository.UnitOfWork) error {
		repo, _ := uow.AccountRepository()
		return repo.Create(build(s.T(), "Jane Smith", 9999))
	})
	s.ErrorIs(err, account.ErrDuplicateUsername)
}

func (s *UoWTestSuite) TestApplyCommitsAllEntries() {
	before := s.total()
	err := s.uow.Do(s.ctx, func(uow repository.UnitOfWork) error {
		repo, _ := uow.AccountRepository()
		return repo.Apply(account.TransferDelta("js", "jd", decimal.NewFromInt(100)))
	})
	s.Require().NoError(err)

	js, err := s.get("js")
	s.Require().NoError(err)
	jd, err := s.get("jd")
	s.Require().NoError(err)

	s.True(js.Movements()[8].Equal(decimal.NewFromInt(-100)))
	s.True(jd.Movements()[8].Equal(decimal.NewFromInt(100)))
	s.True(before.Equal(s.total()), "transfer must conserve the total")
}

func (s *UoWTestSuite) TestApplyUnknownTargetStagesNothing() {
	err := s.uow.Do(s.ctx, func(uow repository.UnitOfWork) error {
		repo, _ := uow.AccountRepository()
		return repo.Apply(account.TransferDelta("js", "zz", decimal.NewFromInt(100)))
	})
	s.ErrorIs(err, account.ErrAccountNotFound)

	js, err := s.get("js")
	s.Require().NoError(err)
	s.Len(js.Movements(), 8)
}

func (s *UoWTestSuite) TestApplyEmptyDelta() {
	err := s.uow.Do(s.ctx, func(uow repository.UnitOfWork) error {
		repo, _ := uow.AccountRepository()
		return repo.Apply(account.Delta{})
	})
	s.ErrorIs(err, account.ErrEmptyDelta)
}

func (s *UoWTestSuite) TestRollbackDiscardsEverything() {
	hookRan := false
	boom := errors.New("boom")
	err := s.uow.Do(s.ctx, func(uow repository.UnitOfWork) error {
		repo, _ := uow.AccountRepository()
		s.Require().NoError(repo.Apply(account.LoanDelta("js", decimal.NewFromInt(2000))))
		s.Require().NoError(repo.Delete("jd"))
		uow.AfterCommit(func() { hookRan = true })
		return boom
	})
	s.ErrorIs(err, boom)
	s.False(hookRan)

	js, err := s.get("js")
	s.Require().NoError(err)
	s.Len(js.Movements(), 8)
	jd, err := s.get("jd")
	s.Require().NoError(err)
	s.False(jd.Closed(), "a rolled back delete must not close the account")
}

func (s *UoWTestSuite) TestDeleteRunsHookInCommit() {
	hookRan := false
	stored, err := s.get("js")
	s.Require().NoError(err)
	err = s.uow.Do(s.ctx, func(uow repository.UnitOfWork) error {
		repo, _ := uow.AccountRepository()
		if err := repo.Delete("js"); err != nil {
			return err
		}
		_, err := repo.Get("js")
		s.ErrorIs(err, account.ErrAccountNotFound, "staged delete is visible inside the transaction")
		uow.AfterCommit(func() {
			s.True(stored.Closed(), "account is flagged before hooks run")
			hookRan = true
		})
		return nil
	})
	s.Require().NoError(err)
	s.True(hookRan)

	_, err = s.get("js")
	s.ErrorIs(err, account.ErrAccountNotFound)
}

func (s *UoWTestSuite) TestDeleteUnknown() {
	err := s.uow.Do(s.ctx, func(uow repository.UnitOfWork) error {
		repo, _ := uow.AccountRepository()
		return repo.Delete("zz")
	})
	s.ErrorIs(err, account.ErrAccountNotFound)
}

func (s *UoWTestSuite) TestNestedDoJoinsOuter() {
	err := s.uow.Do(s.ctx, func(outer repository.UnitOfWork) error {
		return outer.Do(s.ctx, func(inner repository.UnitOfWork) error {
			repo, _ := inner.AccountRepository()
			return repo.Apply(account.LoanDelta("jd", decimal.NewFromInt(10)))
		})
	})
	s.Require().NoError(err)
	jd, err := s.get("jd")
	s.Require().NoError(err)
	s.Len(jd.Movements(), 9)
}

func (s *UoWTestSuite) TestCancelledContext() {
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()
	called := false
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		called = true
		return nil
	})
	s.ErrorIs(err, context.Canceled)
	s.False(called)
}

func TestConcurrentTransfersConserveTotal(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uow := infrarepo.NewUoW(infrarepo.NewStore(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, uow.Do(ctx, func(u repository.UnitOfWork) error {
		repo, _ := u.AccountRepository()
		if err := repo.Create(build(t, "Alice Anders", 1, 1000)); err != nil {
			return err
		}
		return repo.Create(build(t, "Bob Brown", 2, 1000))
	}))

	transfer := func(from, to string) error {
		return uow.Do(ctx, func(u repository.UnitOfWork) error {
			repo, _ := u.AccountRepository()
			src, err := repo.Get(from)
			if err != nil {
				return err
			}
			dst, err := repo.Get(to)
			if err != nil {
				return err
			}
			amount := decimal.NewFromInt(1)
			if err := src.ValidateTransfer(dst, amount); err != nil {
				return err
			}
			return repo.Apply(account.TransferDelta(from, to, amount))
		})
	}

	const n = 200
	var wg sync.WaitGroup
	wg.Add(2 * n)
	for range n {
		go func() {
			defer wg.Done()
			assert.NoError(t, transfer("aa", "bb"))
		}()
		go func() {
			defer wg.Done()
			assert.NoError(t, transfer("bb", "aa"))
		}()
	}
	wg.Wait()

	require.NoError(t, uow.Do(ctx, func(u repository.UnitOfWork) error {
		repo, _ := u.AccountRepository()
		accs, err := repo.List()
		total := decimal.Zero
		for _, a := range accs {
			assert.False(t, a.Balance().IsNegative())
			total = total.Add(a.Balance())
		}
		assert.True(t, total.Equal(decimal.NewFromInt(2000)), total.String())
		return err
	}))
}

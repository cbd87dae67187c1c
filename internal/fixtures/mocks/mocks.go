// Package mocks holds testify mocks of the repository and event bus contracts.
package mocks

import (
	"context"

	"github.com/Badi1298/Bankist/pkg/domain/account"
	"github.com/Badi1298/Bankist/pkg/domain/events"
	"github.com/Badi1298/Bankist/pkg/eventbus"
	"github.com/Badi1298/Bankist/pkg/repository"
	"github.com/stretchr/testify/mock"
)

// MockBus is a mock of eventbus.Bus.
type MockBus struct {
	mock.Mock
}

func NewMockBus(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockBus {
	m := &MockBus{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockBus) Register(eventType events.EventType, handler eventbus.HandlerFunc) {
	m.Called(eventType, handler)
}

func (m *MockBus) Emit(ctx context.Context, event events.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// MockUnitOfWork is a mock of repository.UnitOfWork. Do runs fn against the
// mock itself unless the expectation returns an error.
type MockUnitOfWork struct {
	mock.Mock
}

func NewMockUnitOfWork(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockUnitOfWork {
	m := &MockUnitOfWork{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockUnitOfWork) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	args := m.Called(ctx, fn)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(m)
}

func (m *MockUnitOfWork) AccountRepository() (repository.AccountRepository, error) {
	args := m.Called()
	repo, _ := args.Get(0).(repository.AccountRepository)
	return repo, args.Error(1)
}

func (m *MockUnitOfWork) AfterCommit(fn func()) {
	m.Called(fn)
	fn()
}

// MockAccountRepository is a mock of repository.AccountRepository.
type MockAccountRepository struct {
	mock.Mock
}

func NewMockAccountRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockAccountRepository {
	m := &MockAccountRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockAccountRepository) Get(username string) (*account.Account, error) {
	args := m.Called(username)
	acc, _ := args.Get(0).(*account.Account)
	return acc, args.Error(1)
}

func (m *MockAccountRepository) List() ([]*account.Account, error) {
	args := m.Called()
	accs, _ := args.Get(0).([]*account.Account)
	return accs, args.Error(1)
}

func (m *MockAccountRepository) Create(a *account.Account) error {
	return m.Called(a).Error(0)
}

func (m *MockAccountRepository) Apply(delta account.Delta) error {
	return m.Called(delta).Error(0)
}

func (m *MockAccountRepository) Delete(username string) error {
	return m.Called(username).Error(0)
}

var (
	_ eventbus.Bus                 = (*MockBus)(nil)
	_ repository.UnitOfWork        = (*MockUnitOfWork)(nil)
	_ repository.AccountRepository = (*MockAccountRepository)(nil)
)

package service

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/ledger-server/internal/operator/actions"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/account"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
	"github.com/carson-networks/ledger-server/internal/storage/user"
)

type mockUsers struct {
	mock.Mock
}

func (m *mockUsers) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	row, _ := args.Get(0).(*user.User)
	return row, args.Error(1)
}

func (m *mockUsers) FindByUsername(ctx context.Context, username string, includeDeleted bool) (*user.User, error) {
	args := m.Called(ctx, username, includeDeleted)
	row, _ := args.Get(0).(*user.User)
	return row, args.Error(1)
}

type mockAccounts struct {
	mock.Mock
}

func (m *mockAccounts) FindByID(ctx context.Context, userID, id uuid.UUID) (*account.Account, error) {
	args := m.Called(ctx, userID, id)
	row, _ := args.Get(0).(*account.Account)
	return row, args.Error(1)
}

func (m *mockAccounts) List(ctx context.Context, filter *account.AccountFilter) ([]*account.Account, error) {
	args := m.Called(ctx, filter)
	rows, _ := args.Get(0).([]*account.Account)
	return rows, args.Error(1)
}

func (m *mockAccounts) Count(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

type mockTransactions struct {
	mock.Mock
}

func (m *mockTransactions) FindByID(ctx context.Context, userID, id uuid.UUID) (*transaction.TransactionWithAccount, error) {
	args := m.Called(ctx, userID, id)
	row, _ := args.Get(0).(*transaction.TransactionWithAccount)
	return row, args.Error(1)
}

func (m *mockTransactions) List(ctx context.Context, filter *transaction.TransactionFilter) ([]*transaction.TransactionWithAccount, error) {
	args := m.Called(ctx, filter)
	rows, _ := args.Get(0).([]*transaction.TransactionWithAccount)
	return rows, args.Error(1)
}

func (m *mockTransactions) Count(ctx context.Context, accountID uuid.UUID) (int64, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockTransactions) ListByAccountIDs(ctx context.Context, accountIDs []uuid.UUID) ([]*transaction.Transaction, error) {
	args := m.Called(ctx, accountIDs)
	rows, _ := args.Get(0).([]*transaction.Transaction)
	return rows, args.Error(1)
}

func (m *mockTransactions) Summarize(ctx context.Context, accountID uuid.UUID, period transaction.Period) ([]*transaction.PeriodTotal, error) {
	args := m.Called(ctx, accountID, period)
	rows, _ := args.Get(0).([]*transaction.PeriodTotal)
	return rows, args.Error(1)
}

type mockProcessor struct {
	mock.Mock
}

func (m *mockProcessor) Process(ctx context.Context, action actions.IAction) error {
	args := m.Called(ctx, action)
	return args.Error(0)
}

func (m *mockProcessor) Dispatch(action actions.IAction) <-chan error {
	args := m.Called(action)
	result := make(chan error, 1)
	result <- args.Error(0)
	return result
}

type testDeps struct {
	users        *mockUsers
	accounts     *mockAccounts
	transactions *mockTransactions
	ops          *mockProcessor
	reader       *storage.Reader
}

func newTestDeps() *testDeps {
	deps := &testDeps{
		users:        new(mockUsers),
		accounts:     new(mockAccounts),
		transactions: new(mockTransactions),
		ops:          new(mockProcessor),
	}
	deps.reader = &storage.Reader{
		Users:        deps.users,
		Accounts:     deps.accounts,
		Transactions: deps.transactions,
	}
	return deps
}

func newID() uuid.UUID {
	return uuid.Must(uuid.NewV4())
}

var fixedTime = time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

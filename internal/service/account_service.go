package service

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/apperror"
	"github.com/carson-networks/ledger-server/internal/operator/actions"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/account"
)

// AccountService handles account business logic.
type AccountService struct {
	reader *storage.Reader
	ops    processor
}

// NewAccountService creates a new AccountService.
func NewAccountService(reader *storage.Reader, ops processor) *AccountService {
	return &AccountService{reader: reader, ops: ops}
}

// CreateAccount opens an account for userID.
func (s *AccountService) CreateAccount(ctx context.Context, userID uuid.UUID, create AccountCreate) (*Account, error) {
	action := &actions.CreateAccount{
		UserID:      userID,
		Title:       create.Title,
		Description: create.Description,
		AccountType: create.AccountType,
		Balance:     create.Balance,
	}
	if err := s.ops.Process(ctx, action); err != nil {
		return nil, err
	}

	result := accountFromStorage(action.Created)
	result.Transactions = []Transaction{}
	return &result, nil
}

// GetAccount returns the caller's live account with its live transactions.
func (s *AccountService) GetAccount(ctx context.Context, userID, id uuid.UUID) (*Account, error) {
	row, err := s.reader.Accounts.FindByID(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("find account: %w", err)
	}
	if row == nil {
		return nil, apperror.NotFound(actions.MessageAccountNotFound)
	}

	accounts, err := s.withTransactions(ctx, []*account.Account{row})
	if err != nil {
		return nil, err
	}
	return &accounts[0], nil
}

// ListAccounts returns one page of the caller's live accounts, each with its live
// transactions.
func (s *AccountService) ListAccounts(ctx context.Context, userID uuid.UUID, page int) (*AccountPage, error) {
	offset, err := pageOffset(page)
	if err != nil {
		return nil, err
	}

	count, err := s.reader.Accounts.Count(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count accounts: %w", err)
	}

	rows, err := s.reader.Accounts.List(ctx, &account.AccountFilter{
		UserID: userID,
		Limit:  PageSize,
		Offset: offset,
	})
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}

	accounts, err := s.withTransactions(ctx, rows)
	if err != nil {
		return nil, err
	}

	return &AccountPage{
		Accounts: accounts,
		Meta:     newPageMeta(count, page),
	}, nil
}

func (s *AccountService) EditAccount(ctx context.Context, userID, id uuid.UUID, edit AccountEdit) (*Account, error) {
	action := &actions.EditAccount{
		UserID:    userID,
		AccountID: id,
		Patch: account.AccountPatch{
			Title:       edit.Title,
			Description: edit.Description,
			AccountType: edit.AccountType,
			Balance:     edit.Balance,
		},
	}
	if err := s.ops.Process(ctx, action); err != nil {
		return nil, err
	}

	result := accountFromStorage(action.Updated)
	return &result, nil
}

func (s *AccountService) DeleteAccount(ctx context.Context, userID, id uuid.UUID) error {
	return s.ops.Process(ctx, &actions.DeleteAccount{UserID: userID, AccountID: id})
}

func (s *AccountService) RestoreAccount(ctx context.Context, userID, id uuid.UUID) error {
	return s.ops.Process(ctx, &actions.RestoreAccount{UserID: userID, AccountID: id})
}

// withTransactions converts rows and attaches their live transactions, loaded in one
// query.
func (s *AccountService) withTransactions(ctx context.Context, rows []*account.Account) ([]Account, error) {
	ids := make([]uuid.UUID, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}

	entries, err := s.reader.Transactions.ListByAccountIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	byAccount := make(map[uuid.UUID][]Transaction, len(rows))
	for _, entry := range entries {
		byAccount[entry.AccountID] = append(byAccount[entry.AccountID], transactionFromStorage(entry))
	}

	accounts := make([]Account, len(rows))
	for i, row := range rows {
		accounts[i] = accountFromStorage(row)
		accounts[i].Transactions = byAccount[row.ID]
		if accounts[i].Transactions == nil {
			accounts[i].Transactions = []Transaction{}
		}
	}
	return accounts, nil
}

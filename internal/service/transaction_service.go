package service

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/apperror"
	"github.com/carson-networks/ledger-server/internal/operator/actions"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
)

// TransactionService handles transaction business logic. Every write runs as a ledger
// action so the owning account's balance moves in the same unit of work.
type TransactionService struct {
	reader *storage.Reader
	ops    processor
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(reader *storage.Reader, ops processor) *TransactionService {
	return &TransactionService{reader: reader, ops: ops}
}

// CreateTransaction records a transaction on one of the caller's accounts.
func (s *TransactionService) CreateTransaction(ctx context.Context, userID uuid.UUID, create TransactionCreate) (*Transaction, error) {
	action := &actions.CreateTransaction{
		UserID:      userID,
		AccountID:   create.AccountID,
		Title:       create.Title,
		Description: create.Description,
		Amount:      create.Amount,
	}
	if err := s.ops.Process(ctx, action); err != nil {
		return nil, err
	}

	result := transactionFromStorage(action.Created)
	return &result, nil
}

// GetTransaction returns a live transaction of the caller joined with its account.
func (s *TransactionService) GetTransaction(ctx context.Context, userID, id uuid.UUID) (*Transaction, error) {
	row, err := s.reader.Transactions.FindByID(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("find transaction: %w", err)
	}
	if row == nil {
		return nil, apperror.NotFound(actions.MessageTransactionNotFound)
	}

	result := transactionWithAccountFromStorage(row)
	return &result, nil
}

// ListTransactions returns one page of a live account's live transactions, newest first.
func (s *TransactionService) ListTransactions(ctx context.Context, userID, accountID uuid.UUID, page int) (*TransactionPage, error) {
	offset, err := pageOffset(page)
	if err != nil {
		return nil, err
	}

	acct, err := s.reader.Accounts.FindByID(ctx, userID, accountID)
	if err != nil {
		return nil, fmt.Errorf("find account: %w", err)
	}
	if acct == nil {
		return nil, apperror.NotFound(actions.MessageAccountNotFound)
	}

	count, err := s.reader.Transactions.Count(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("count transactions: %w", err)
	}

	rows, err := s.reader.Transactions.List(ctx, &transaction.TransactionFilter{
		AccountID: accountID,
		Limit:     PageSize,
		Offset:    offset,
	})
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	entries := make([]Transaction, len(rows))
	for i, row := range rows {
		entries[i] = transactionWithAccountFromStorage(row)
	}

	return &TransactionPage{
		Transactions: entries,
		Meta:         newPageMeta(count, page),
	}, nil
}

func (s *TransactionService) EditTransaction(ctx context.Context, userID, id uuid.UUID, edit TransactionEdit) (*Transaction, error) {
	action := &actions.EditTransaction{
		UserID:        userID,
		TransactionID: id,
		Patch: transaction.TransactionPatch{
			Title:       edit.Title,
			Description: edit.Description,
			Amount:      edit.Amount,
		},
	}
	if err := s.ops.Process(ctx, action); err != nil {
		return nil, err
	}

	result := transactionFromStorage(action.Updated)
	return &result, nil
}

func (s *TransactionService) DeleteTransaction(ctx context.Context, userID, id uuid.UUID) error {
	return s.ops.Process(ctx, &actions.DeleteTransaction{UserID: userID, TransactionID: id})
}

func (s *TransactionService) RestoreTransaction(ctx context.Context, userID, id uuid.UUID) error {
	return s.ops.Process(ctx, &actions.RestoreTransaction{UserID: userID, TransactionID: id})
}

package service

import (
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/storage/transaction"
)

// Transaction represents a transaction in the service layer. Account is set on the
// single and per-account read paths.
type Transaction struct {
	ID          uuid.UUID
	AccountID   uuid.UUID
	Title       string
	Description string
	Amount      int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Account     *Account
}

// TransactionCreate is the input for recording a transaction.
type TransactionCreate struct {
	AccountID   uuid.UUID
	Title       string
	Description string
	Amount      int64
}

// TransactionEdit lists the transaction fields an edit may change.
type TransactionEdit struct {
	Title       omit.Val[string]
	Description omit.Val[string]
	Amount      omit.Val[int64]
}

// TransactionPage is one page of an account's live transactions.
type TransactionPage struct {
	Transactions []Transaction
	Meta         PageMeta
}

func transactionFromStorage(row *transaction.Transaction) Transaction {
	return Transaction{
		ID:          row.ID,
		AccountID:   row.AccountID,
		Title:       row.Title,
		Description: row.Description,
		Amount:      row.Amount,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}

func transactionWithAccountFromStorage(row *transaction.TransactionWithAccount) Transaction {
	result := transactionFromStorage(&row.Transaction)
	result.Account = &Account{
		ID:          row.Account.ID,
		UserID:      row.Account.UserID,
		Title:       row.Account.Title,
		Description: row.Account.Description,
		AccountType: row.Account.AccountType,
		Balance:     row.Account.Balance,
		CreatedAt:   row.Account.CreatedAt,
		UpdatedAt:   row.Account.UpdatedAt,
	}
	return result
}

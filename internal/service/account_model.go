package service

import (
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/storage/account"
)

// Account represents an account in the service layer, with its live transactions when
// they were requested.
type Account struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	Title        string
	Description  string
	AccountType  string
	Balance      int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Transactions []Transaction
}

// AccountCreate is the input for opening an account. Balance is the opening balance.
type AccountCreate struct {
	Title       string
	Description string
	AccountType string
	Balance     int64
}

// AccountEdit lists the account fields an edit may change.
type AccountEdit struct {
	Title       omit.Val[string]
	Description omit.Val[string]
	AccountType omit.Val[string]
	Balance     omit.Val[int64]
}

// AccountPage is one page of the caller's accounts.
type AccountPage struct {
	Accounts []Account
	Meta     PageMeta
}

func accountFromStorage(row *account.Account) Account {
	return Account{
		ID:          row.ID,
		UserID:      row.UserID,
		Title:       row.Title,
		Description: row.Description,
		AccountType: row.AccountType,
		Balance:     row.Balance,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}

package actions

import (
	"context"

	"github.com/carson-networks/ledger-server/internal/storage"
)

type IAction interface {
	Perform(ctx context.Context, writer *storage.Writer) error
}

// Validator is implemented by actions that can reject their input before any storage
// work is queued.
type Validator interface {
	Validate() error
}

const (
	MessageUserNotFound        = "User not found"
	MessageAccountNotFound     = "Account not found"
	MessageTransactionNotFound = "Transaction not found"
	MessageUsernameTaken       = "Username already exist, please use another username."
	MessageOutOfRange          = "Amount is out of range for the account balance"
)

package actions

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/apperror"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/account"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
)

// lockLedgerEntry locks the caller, the owning account and then the transaction, in
// that order, so every ledger action on one account serializes without deadlocking. The
// account must be live and owned by userID; the transaction may be tombstoned.
func lockLedgerEntry(ctx context.Context, writer *storage.Writer, userID, id uuid.UUID) (*account.Account, *transaction.Transaction, error) {
	entry, err := writer.Transactions.Get(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("get transaction: %w", err)
	}
	if entry == nil {
		return nil, nil, apperror.NotFound(MessageTransactionNotFound)
	}

	if err = lockLiveUser(ctx, writer, userID); err != nil {
		return nil, nil, err
	}

	acct, err := writer.Accounts.FindByIDForUpdate(ctx, entry.AccountID)
	if err != nil {
		return nil, nil, fmt.Errorf("lock account: %w", err)
	}
	if !acct.OwnedBy(userID) {
		return nil, nil, apperror.NotFound(MessageTransactionNotFound)
	}

	entry, err = writer.Transactions.FindByIDForUpdate(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("lock transaction: %w", err)
	}
	if entry == nil {
		return nil, nil, apperror.NotFound(MessageTransactionNotFound)
	}

	return acct, entry, nil
}

func outOfRange(field string) error {
	return apperror.Validation(MessageOutOfRange, apperror.FieldError{Field: field, Message: MessageOutOfRange})
}

func addChecked(a, b int64, field string) (int64, error) {
	sum := a + b
	if (b > 0 && sum < a) || (b < 0 && sum > a) {
		return 0, outOfRange(field)
	}
	return sum, nil
}

func subChecked(a, b int64, field string) (int64, error) {
	diff := a - b
	if (b > 0 && diff > a) || (b < 0 && diff < a) {
		return 0, outOfRange(field)
	}
	return diff, nil
}

// replaceAmount returns value - from + to. Whenever the result fits in int64 one of the
// two evaluation orders has no overflowing intermediate.
func replaceAmount(value, from, to int64, field string) (int64, error) {
	if partial, err := subChecked(value, from, field); err == nil {
		return addChecked(partial, to, field)
	}
	partial, err := addChecked(value, to, field)
	if err != nil {
		return 0, err
	}
	return subChecked(partial, from, field)
}

// movedBalance returns the account balance after a transaction's contribution changes
// from one amount to another. Both the balance and the live transaction total must stay
// within int64.
func movedBalance(acct *account.Account, from, to int64) (int64, error) {
	total, err := subChecked(acct.Balance, acct.OpeningBalance, "amount")
	if err != nil {
		return 0, err
	}
	if _, err = replaceAmount(total, from, to, "amount"); err != nil {
		return 0, err
	}
	return replaceAmount(acct.Balance, from, to, "amount")
}

func setBalance(ctx context.Context, writer *storage.Writer, acct *account.Account, balance int64) error {
	if balance == acct.Balance {
		return nil
	}
	if err := writer.Accounts.UpdateBalance(ctx, acct.ID, balance); err != nil {
		return fmt.Errorf("update balance: %w", err)
	}
	return nil
}

type CreateTransaction struct {
	UserID      uuid.UUID
	AccountID   uuid.UUID
	Title       string
	Description string
	Amount      int64

	Created *transaction.Transaction
}

func (c *CreateTransaction) Validate() error {
	var fields apperror.Fields
	if c.AccountID == uuid.Nil {
		fields.Add("accountId", "accountId is required")
	}
	if isBlank(c.Title) {
		fields.Add("title", "title is required")
	}
	return fields.Err("")
}

func (c *CreateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	if err := lockLiveUser(ctx, writer, c.UserID); err != nil {
		return err
	}

	acct, err := writer.Accounts.FindByIDForUpdate(ctx, c.AccountID)
	if err != nil {
		return fmt.Errorf("lock account: %w", err)
	}
	if !acct.OwnedBy(c.UserID) {
		return apperror.NotFound(MessageAccountNotFound)
	}
	balance, err := movedBalance(acct, 0, c.Amount)
	if err != nil {
		return err
	}

	created, err := writer.Transactions.Insert(ctx, &transaction.TransactionCreate{
		AccountID:   acct.ID,
		Title:       c.Title,
		Description: c.Description,
		Amount:      c.Amount,
	})
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}

	if err = setBalance(ctx, writer, acct, balance); err != nil {
		return err
	}

	c.Created = created
	return nil
}

type EditTransaction struct {
	UserID        uuid.UUID
	TransactionID uuid.UUID
	Patch         transaction.TransactionPatch

	Updated *transaction.Transaction
}

func (e *EditTransaction) Validate() error {
	var fields apperror.Fields
	if v, ok := e.Patch.Title.Get(); ok && isBlank(v) {
		fields.Add("title", "title is not allowed to be empty")
	}
	return fields.Err("")
}

func (e *EditTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	acct, entry, err := lockLedgerEntry(ctx, writer, e.UserID, e.TransactionID)
	if err != nil {
		return err
	}
	if entry.IsDeleted() {
		return apperror.NotFound(MessageTransactionNotFound)
	}
	balance := acct.Balance
	if amount, ok := e.Patch.Amount.Get(); ok {
		if balance, err = movedBalance(acct, entry.Amount, amount); err != nil {
			return err
		}
	}

	updated, err := writer.Transactions.Update(ctx, entry.ID, &e.Patch)
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	if updated == nil {
		return apperror.NotFound(MessageTransactionNotFound)
	}

	if err = setBalance(ctx, writer, acct, balance); err != nil {
		return err
	}

	e.Updated = updated
	return nil
}

// DeleteTransaction tombstones a transaction and takes its amount out of the balance.
// Deleting a tombstoned transaction changes nothing.
type DeleteTransaction struct {
	UserID        uuid.UUID
	TransactionID uuid.UUID
}

func (d *DeleteTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	acct, entry, err := lockLedgerEntry(ctx, writer, d.UserID, d.TransactionID)
	if err != nil {
		return err
	}
	if entry.IsDeleted() {
		return nil
	}
	balance, err := movedBalance(acct, entry.Amount, 0)
	if err != nil {
		return err
	}

	if err = writer.Transactions.SoftDelete(ctx, entry.ID); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return setBalance(ctx, writer, acct, balance)
}

// RestoreTransaction clears a tombstone and puts the amount back into the balance.
// Restoring a live transaction changes nothing.
type RestoreTransaction struct {
	UserID        uuid.UUID
	TransactionID uuid.UUID
}

func (r *RestoreTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	acct, entry, err := lockLedgerEntry(ctx, writer, r.UserID, r.TransactionID)
	if err != nil {
		return err
	}
	if !entry.IsDeleted() {
		return nil
	}
	balance, err := movedBalance(acct, 0, entry.Amount)
	if err != nil {
		return err
	}

	if err = writer.Transactions.Restore(ctx, entry.ID); err != nil {
		return fmt.Errorf("restore transaction: %w", err)
	}
	return setBalance(ctx, writer, acct, balance)
}

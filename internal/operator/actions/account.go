package actions

import (
	"context"
	"fmt"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/apperror"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/account"
)

type CreateAccount struct {
	UserID      uuid.UUID
	Title       string
	Description string
	AccountType string
	Balance     int64

	Created *account.Account
}

func (c *CreateAccount) Validate() error {
	var fields apperror.Fields
	if isBlank(c.Title) {
		fields.Add("title", "title is required")
	}
	if isBlank(c.AccountType) {
		fields.Add("accountType", "accountType is required")
	}
	return fields.Err("")
}

func (c *CreateAccount) Perform(ctx context.Context, writer *storage.Writer) error {
	if err := lockLiveUser(ctx, writer, c.UserID); err != nil {
		return err
	}

	created, err := writer.Accounts.Insert(ctx, &account.AccountCreate{
		UserID:      c.UserID,
		Title:       c.Title,
		Description: c.Description,
		AccountType: c.AccountType,
		Balance:     c.Balance,
	})
	if err != nil {
		return fmt.Errorf("insert account: %w", err)
	}

	c.Created = created
	return nil
}

// EditAccount merges Patch into a live account. An explicit balance re-bases the
// opening balance so that the live transactions still add up to it.
type EditAccount struct {
	UserID    uuid.UUID
	AccountID uuid.UUID
	Patch     account.AccountPatch

	Updated *account.Account
}

func (e *EditAccount) Validate() error {
	var fields apperror.Fields
	if v, ok := e.Patch.Title.Get(); ok && isBlank(v) {
		fields.Add("title", "title is not allowed to be empty")
	}
	if v, ok := e.Patch.AccountType.Get(); ok && isBlank(v) {
		fields.Add("accountType", "accountType is not allowed to be empty")
	}
	if e.Patch.OpeningBalance.IsValue() {
		fields.Add("openingBalance", "openingBalance is not allowed")
	}
	return fields.Err("")
}

func (e *EditAccount) Perform(ctx context.Context, writer *storage.Writer) error {
	if err := lockLiveUser(ctx, writer, e.UserID); err != nil {
		return err
	}

	acct, err := writer.Accounts.FindByIDForUpdate(ctx, e.AccountID)
	if err != nil {
		return fmt.Errorf("lock account: %w", err)
	}
	if !acct.OwnedBy(e.UserID) {
		return apperror.NotFound(MessageAccountNotFound)
	}

	patch := e.Patch
	if balance, ok := patch.Balance.Get(); ok {
		transactionTotal, err := subChecked(acct.Balance, acct.OpeningBalance, "balance")
		if err != nil {
			return err
		}
		opening, err := subChecked(balance, transactionTotal, "balance")
		if err != nil {
			return err
		}
		patch.OpeningBalance = omit.From(opening)
	}

	updated, err := writer.Accounts.Update(ctx, acct.ID, &patch)
	if err != nil {
		return fmt.Errorf("update account: %w", err)
	}
	if updated == nil {
		return apperror.NotFound(MessageAccountNotFound)
	}

	e.Updated = updated
	return nil
}

type DeleteAccount struct {
	UserID    uuid.UUID
	AccountID uuid.UUID
}

func (d *DeleteAccount) Perform(ctx context.Context, writer *storage.Writer) error {
	if err := lockLiveUser(ctx, writer, d.UserID); err != nil {
		return err
	}

	acct, err := writer.Accounts.FindByIDForUpdate(ctx, d.AccountID)
	if err != nil {
		return fmt.Errorf("lock account: %w", err)
	}
	if acct == nil || acct.UserID != d.UserID {
		return apperror.NotFound(MessageAccountNotFound)
	}
	if acct.IsDeleted() {
		return nil
	}

	if err = writer.Accounts.SoftDelete(ctx, acct.ID); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	return nil
}

// RestoreAccount clears the tombstone. The balance needs no recompute since ledger
// actions are refused while the account is tombstoned.
type RestoreAccount struct {
	UserID    uuid.UUID
	AccountID uuid.UUID
}

func (r *RestoreAccount) Perform(ctx context.Context, writer *storage.Writer) error {
	if err := lockLiveUser(ctx, writer, r.UserID); err != nil {
		return err
	}

	acct, err := writer.Accounts.FindByIDForUpdate(ctx, r.AccountID)
	if err != nil {
		return fmt.Errorf("lock account: %w", err)
	}
	if acct == nil || acct.UserID != r.UserID {
		return apperror.NotFound(MessageAccountNotFound)
	}
	if !acct.IsDeleted() {
		return nil
	}

	if err = writer.Accounts.Restore(ctx, acct.ID); err != nil {
		return fmt.Errorf("restore account: %w", err)
	}
	return nil
}

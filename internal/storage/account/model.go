package account

import (
	"context"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"
)

const TableName = "accounts"

var accountColumns = []any{
	"id", "user_id", "title", "description", "account_type",
	"balance", "opening_balance", "created_at", "updated_at", "deleted_at",
}

// Account represents an account record. While the account is live, Balance equals
// OpeningBalance plus the amounts of its live transactions.
type Account struct {
	ID             uuid.UUID  `db:"id"`
	UserID         uuid.UUID  `db:"user_id"`
	Title          string     `db:"title"`
	Description    string     `db:"description"`
	AccountType    string     `db:"account_type"`
	Balance        int64      `db:"balance"`
	OpeningBalance int64      `db:"opening_balance"`
	CreatedAt      time.Time  `db:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at"`
	DeletedAt      *time.Time `db:"deleted_at"`
}

func (a *Account) IsDeleted() bool {
	return a.DeletedAt != nil
}

// OwnedBy reports whether the account is live and belongs to userID.
func (a *Account) OwnedBy(userID uuid.UUID) bool {
	return a != nil && !a.IsDeleted() && a.UserID == userID
}

// AccountFilter specifies filters for listing accounts.
type AccountFilter struct {
	UserID uuid.UUID
	Limit  int
	Offset int
}

// AccountCreate is the input for creating a new account. Balance doubles as the
// opening balance.
type AccountCreate struct {
	UserID      uuid.UUID
	Title       string
	Description string
	AccountType string
	Balance     int64
}

// AccountPatch lists the account fields an edit may change. Unset fields are left
// untouched. OpeningBalance is never taken from callers; it is derived when Balance is
// re-based.
type AccountPatch struct {
	Title          omit.Val[string]
	Description    omit.Val[string]
	AccountType    omit.Val[string]
	Balance        omit.Val[int64]
	OpeningBalance omit.Val[int64]
}

func (p *AccountPatch) IsEmpty() bool {
	return p.Title.IsUnset() && p.Description.IsUnset() && p.AccountType.IsUnset() &&
		p.Balance.IsUnset() && p.OpeningBalance.IsUnset()
}

// IAccountReader defines the read-only account storage operations. Every lookup is
// scoped to the owning user and to live rows.
type IAccountReader interface {
	FindByID(ctx context.Context, userID, id uuid.UUID) (*Account, error)
	List(ctx context.Context, filter *AccountFilter) ([]*Account, error)
	Count(ctx context.Context, userID uuid.UUID) (int64, error)
}

// IAccountWriter defines the account storage operations available inside a unit of work.
type IAccountWriter interface {
	IAccountReader
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Account, error)
	Insert(ctx context.Context, create *AccountCreate) (*Account, error)
	Update(ctx context.Context, id uuid.UUID, patch *AccountPatch) (*Account, error)
	UpdateBalance(ctx context.Context, id uuid.UUID, balance int64) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Restore(ctx context.Context, id uuid.UUID) error
}

package transaction

import (
	"context"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"
)

const TableName = "transactions"

var transactionColumns = []any{
	"id", "account_id", "title", "description", "amount", "created_at", "updated_at", "deleted_at",
}

// Transaction represents a transaction record. Amount is a signed delta applied to the
// owning account's balance while the transaction is live.
type Transaction struct {
	ID          uuid.UUID  `db:"id"`
	AccountID   uuid.UUID  `db:"account_id"`
	Title       string     `db:"title"`
	Description string     `db:"description"`
	Amount      int64      `db:"amount"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
	DeletedAt   *time.Time `db:"deleted_at"`
}

func (t *Transaction) IsDeleted() bool {
	return t.DeletedAt != nil
}

// AccountRef is the owning account as projected next to a transaction.
type AccountRef struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Title       string
	Description string
	AccountType string
	Balance     int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TransactionWithAccount is a live transaction joined with its live owning account.
type TransactionWithAccount struct {
	Transaction
	Account AccountRef
}

// TransactionCreate is the input for creating a new transaction.
type TransactionCreate struct {
	AccountID   uuid.UUID
	Title       string
	Description string
	Amount      int64
}

// TransactionPatch lists the transaction fields an edit may change. Unset fields are
// left untouched.
type TransactionPatch struct {
	Title       omit.Val[string]
	Description omit.Val[string]
	Amount      omit.Val[int64]
}

func (p *TransactionPatch) IsEmpty() bool {
	return p.Title.IsUnset() && p.Description.IsUnset() && p.Amount.IsUnset()
}

// TransactionFilter specifies filters for listing an account's transactions.
type TransactionFilter struct {
	AccountID uuid.UUID
	Limit     int
	Offset    int
}

// Period selects the calendar bucket used by Summarize.
type Period int8

const (
	PeriodDay Period = iota
	PeriodMonth
)

// PeriodTotal is one bucket of a summary. Period is formatted YYYY-MM-DD or YYYY-MM.
type PeriodTotal struct {
	Period      string `db:"period"`
	TotalAmount int64  `db:"total_amount"`
	Count       int64  `db:"count"`
}

// ITransactionReader defines the read-only transaction storage operations.
type ITransactionReader interface {
	FindByID(ctx context.Context, userID, id uuid.UUID) (*TransactionWithAccount, error)
	List(ctx context.Context, filter *TransactionFilter) ([]*TransactionWithAccount, error)
	Count(ctx context.Context, accountID uuid.UUID) (int64, error)
	ListByAccountIDs(ctx context.Context, accountIDs []uuid.UUID) ([]*Transaction, error)
	Summarize(ctx context.Context, accountID uuid.UUID, period Period) ([]*PeriodTotal, error)
}

// ITransactionWriter defines the transaction storage operations available inside a
// unit of work.
type ITransactionWriter interface {
	Get(ctx context.Context, id uuid.UUID) (*Transaction, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Transaction, error)
	Insert(ctx context.Context, create *TransactionCreate) (*Transaction, error)
	Update(ctx context.Context, id uuid.UUID, patch *TransactionPatch) (*Transaction, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Restore(ctx context.Context, id uuid.UUID) error
}

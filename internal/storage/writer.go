package storage

import (
	"context"

	"github.com/stephenafamo/bob"

	"github.com/carson-networks/ledger-server/internal/storage/account"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
	"github.com/carson-networks/ledger-server/internal/storage/user"
)

// Committer ends a unit of work. bob.Tx satisfies it.
type Committer interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Writer gives an action access to every store inside one database transaction.
type Writer struct {
	tx           Committer
	Users        user.IUserWriter
	Accounts     account.IAccountWriter
	Transactions transaction.ITransactionWriter
}

func NewWriter(tx bob.Tx) *Writer {
	return &Writer{
		tx:           tx,
		Users:        user.NewWriter(tx),
		Accounts:     account.NewWriter(tx),
		Transactions: transaction.NewWriter(tx),
	}
}

// NewWriterWith assembles a Writer from arbitrary stores, e.g. in-memory ones.
func NewWriterWith(
	tx Committer,
	users user.IUserWriter,
	accounts account.IAccountWriter,
	transactions transaction.ITransactionWriter,
) *Writer {
	return &Writer{
		tx:           tx,
		Users:        users,
		Accounts:     accounts,
		Transactions: transactions,
	}
}

func (w *Writer) Commit(ctx context.Context) error {
	return w.tx.Commit(ctx)
}

func (w *Writer) Rollback(ctx context.Context) error {
	return w.tx.Rollback(ctx)
}

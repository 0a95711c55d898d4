package transaction

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"
)

type Writer struct {
	tx bob.Executor
}

var _ ITransactionWriter = (*Writer)(nil)

func NewWriter(tx bob.Executor) *Writer {
	return &Writer{tx: tx}
}

// Get returns the transaction regardless of its tombstone without locking it, or nil.
func (w *Writer) Get(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	return w.findOne(ctx, sm.Where(psql.Quote("id").EQ(psql.Arg(id))))
}

// FindByIDForUpdate locks the transaction row for the rest of the unit of work. Callers
// lock the owning account first.
func (w *Writer) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	return w.findOne(ctx,
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
		sm.ForUpdate(),
	)
}

func (w *Writer) Insert(ctx context.Context, create *TransactionCreate) (*Transaction, error) {
	q := psql.Insert(
		im.Into(TableName, "account_id", "title", "description", "amount"),
		im.Values(psql.Arg(create.AccountID, create.Title, create.Description, create.Amount)),
		im.Returning(transactionColumns...),
	)
	return bob.One(ctx, w.tx, q, scan.StructMapper[*Transaction]())
}

// Update applies the set fields of patch to a live transaction and returns the new row.
func (w *Writer) Update(ctx context.Context, id uuid.UUID, patch *TransactionPatch) (*Transaction, error) {
	queryMods := []bob.Mod[*dialect.UpdateQuery]{
		um.Table(TableName),
		um.SetCol("updated_at").To(psql.Raw("now()")),
	}
	if v, ok := patch.Title.Get(); ok {
		queryMods = append(queryMods, um.SetCol("title").ToArg(v))
	}
	if v, ok := patch.Description.Get(); ok {
		queryMods = append(queryMods, um.SetCol("description").ToArg(v))
	}
	if v, ok := patch.Amount.Get(); ok {
		queryMods = append(queryMods, um.SetCol("amount").ToArg(v))
	}
	queryMods = append(queryMods,
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
		um.Where(psql.Quote("deleted_at").IsNull()),
		um.Returning(transactionColumns...),
	)

	row, err := bob.One(ctx, w.tx, psql.Update(queryMods...), scan.StructMapper[*Transaction]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return row, err
}

func (w *Writer) SoftDelete(ctx context.Context, id uuid.UUID) error {
	q := psql.Update(
		um.Table(TableName),
		um.SetCol("deleted_at").To(psql.Raw("now()")),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
		um.Where(psql.Quote("deleted_at").IsNull()),
	)
	_, err := bob.Exec(ctx, w.tx, q)
	return err
}

func (w *Writer) Restore(ctx context.Context, id uuid.UUID) error {
	q := psql.Update(
		um.Table(TableName),
		um.SetCol("deleted_at").To(psql.Raw("NULL")),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	_, err := bob.Exec(ctx, w.tx, q)
	return err
}

func (w *Writer) findOne(ctx context.Context, queryMods ...bob.Mod[*dialect.SelectQuery]) (*Transaction, error) {
	queryMods = append([]bob.Mod[*dialect.SelectQuery]{
		sm.Columns(transactionColumns...),
		sm.From(TableName),
	}, queryMods...)

	row, err := bob.One(ctx, w.tx, psql.Select(queryMods...), scan.StructMapper[*Transaction]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}

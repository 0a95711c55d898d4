package account

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
	Reader
}

var _ IAccountWriter = (*Writer)(nil)

func NewWriter(tx bob.Executor) *Writer {
	return &Writer{
		tx: tx,
		Reader: Reader{
			exec: tx,
		},
	}
}

// FindByIDForUpdate locks the account row for the rest of the unit of work and returns
// it regardless of owner or tombstone, or nil when it does not exist.
func (w *Writer) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Account, error) {
	return w.findOne(ctx,
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
		sm.ForUpdate(),
	)
}

func (w *Writer) Insert(ctx context.Context, create *AccountCreate) (*Account, error) {
	q := psql.Insert(
		im.Into(TableName, "user_id", "title", "description", "account_type", "balance", "opening_balance"),
		im.Values(psql.Arg(create.UserID, create.Title, create.Description, create.AccountType, create.Balance, create.Balance)),
		im.Returning(accountColumns...),
	)
	return bob.One(ctx, w.tx, q, scan.StructMapper[*Account]())
}

// Update applies the set fields of patch to a live account and returns the new row.
func (w *Writer) Update(ctx context.Context, id uuid.UUID, patch *AccountPatch) (*Account, error) {
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
	if v, ok := patch.AccountType.Get(); ok {
		queryMods = append(queryMods, um.SetCol("account_type").ToArg(v))
	}
	if v, ok := patch.Balance.Get(); ok {
		queryMods = append(queryMods, um.SetCol("balance").ToArg(v))
	}
	if v, ok := patch.OpeningBalance.Get(); ok {
		queryMods = append(queryMods, um.SetCol("opening_balance").ToArg(v))
	}
	queryMods = append(queryMods,
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
		um.Where(psql.Quote("deleted_at").IsNull()),
		um.Returning(accountColumns...),
	)

	row, err := bob.One(ctx, w.tx, psql.Update(queryMods...), scan.StructMapper[*Account]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return row, err
}

func (w *Writer) UpdateBalance(ctx context.Context, id uuid.UUID, balance int64) error {
	q := psql.Update(
		um.Table(TableName),
		um.SetCol("balance").ToArg(balance),
		um.SetCol("updated_at").To(psql.Raw("now()")),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	_, err := bob.Exec(ctx, w.tx, q)
	return err
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

package user

import (
	"context"
	"database/sql"
	"errors"
	"time"

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

var _ IUserWriter = (*Writer)(nil)

func NewWriter(tx bob.Executor) *Writer {
	return &Writer{
		tx: tx,
		Reader: Reader{
			exec: tx,
		},
	}
}

// FindByIDForUpdate locks and returns the user regardless of its tombstone, or nil.
func (w *Writer) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*User, error) {
	return w.findOne(ctx,
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
		sm.ForUpdate(),
	)
}

func (w *Writer) Insert(ctx context.Context, create *UserCreate) (*User, error) {
	q := psql.Insert(
		im.Into(TableName, "username", "name", "password", "last_login"),
		im.Values(psql.Arg(create.Username, create.Name, create.Password, create.LastLogin)),
		im.Returning(userColumns...),
	)
	return bob.One(ctx, w.tx, q, scan.StructMapper[*User]())
}

// Update applies the set fields of patch to a live user and returns the new row.
func (w *Writer) Update(ctx context.Context, id uuid.UUID, patch *UserPatch) (*User, error) {
	if patch.IsEmpty() {
		return w.FindByID(ctx, id)
	}

	queryMods := []bob.Mod[*dialect.UpdateQuery]{
		um.Table(TableName),
		um.SetCol("updated_at").To(psql.Raw("now()")),
	}
	if v, ok := patch.Username.Get(); ok {
		queryMods = append(queryMods, um.SetCol("username").ToArg(v))
	}
	if v, ok := patch.Name.Get(); ok {
		queryMods = append(queryMods, um.SetCol("name").ToArg(v))
	}
	if v, ok := patch.Password.Get(); ok {
		queryMods = append(queryMods, um.SetCol("password").ToArg(v))
	}
	queryMods = append(queryMods,
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
		um.Where(psql.Quote("deleted_at").IsNull()),
		um.Returning(userColumns...),
	)

	row, err := bob.One(ctx, w.tx, psql.Update(queryMods...), scan.StructMapper[*User]())
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

func (w *Writer) TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	q := psql.Update(
		um.Table(TableName),
		um.SetCol("last_login").ToArg(at),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	_, err := bob.Exec(ctx, w.tx, q)
	return err
}

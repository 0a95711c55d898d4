package account

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"
)

const defaultListLimit = 10

type Reader struct {
	exec bob.Executor
}

var _ IAccountReader = (*Reader)(nil)

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

func (r *Reader) FindByID(ctx context.Context, userID, id uuid.UUID) (*Account, error) {
	return r.findOne(ctx,
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
		sm.Where(psql.Quote("deleted_at").IsNull()),
	)
}

// List returns one page of the user's live accounts ordered by title.
func (r *Reader) List(ctx context.Context, filter *AccountFilter) ([]*Account, error) {
	limit := defaultListLimit
	if filter.Limit > 0 {
		limit = filter.Limit
	}

	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(accountColumns...),
		sm.From(TableName),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(filter.UserID))),
		sm.Where(psql.Quote("deleted_at").IsNull()),
		sm.OrderBy(psql.Quote("title")).Asc(),
		sm.OrderBy(psql.Quote("id")).Asc(),
		sm.Limit(limit),
		sm.Offset(filter.Offset),
	}
	return bob.All(ctx, r.exec, psql.Select(queryMods...), scan.StructMapper[*Account]())
}

func (r *Reader) Count(ctx context.Context, userID uuid.UUID) (int64, error) {
	q := psql.Select(
		sm.Columns("count(*)"),
		sm.From(TableName),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
		sm.Where(psql.Quote("deleted_at").IsNull()),
	)
	return bob.One(ctx, r.exec, q, scan.SingleColumnMapper[int64])
}

func (r *Reader) findOne(ctx context.Context, queryMods ...bob.Mod[*dialect.SelectQuery]) (*Account, error) {
	queryMods = append([]bob.Mod[*dialect.SelectQuery]{
		sm.Columns(accountColumns...),
		sm.From(TableName),
	}, queryMods...)

	row, err := bob.One(ctx, r.exec, psql.Select(queryMods...), scan.StructMapper[*Account]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}

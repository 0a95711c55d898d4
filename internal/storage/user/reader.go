package user

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

type Reader struct {
	exec bob.Executor
}

var _ IUserReader = (*Reader)(nil)

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

// FindByID returns the live user with the given id, or nil.
func (r *Reader) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return r.findOne(ctx,
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
		sm.Where(psql.Quote("deleted_at").IsNull()),
	)
}

// FindByUsername returns the user owning username, or nil. Tombstoned users are only
// considered when includeDeleted is set, which is what uniqueness checks need.
func (r *Reader) FindByUsername(ctx context.Context, username string, includeDeleted bool) (*User, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Where(psql.Quote("username").EQ(psql.Arg(username))),
	}
	if !includeDeleted {
		queryMods = append(queryMods, sm.Where(psql.Quote("deleted_at").IsNull()))
	}
	return r.findOne(ctx, queryMods...)
}

func (r *Reader) findOne(ctx context.Context, queryMods ...bob.Mod[*dialect.SelectQuery]) (*User, error) {
	queryMods = append([]bob.Mod[*dialect.SelectQuery]{
		sm.Columns(userColumns...),
		sm.From(TableName),
	}, queryMods...)

	row, err := bob.One(ctx, r.exec, psql.Select(queryMods...), scan.StructMapper[*User]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}

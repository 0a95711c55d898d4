package transaction

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"
)

const defaultListLimit = 10

var joinedColumns = []any{
	"t.id AS id",
	"t.account_id AS account_id",
	"t.title AS title",
	"t.description AS description",
	"t.amount AS amount",
	"t.created_at AS created_at",
	"t.updated_at AS updated_at",
	"a.user_id AS account_user_id",
	"a.title AS account_title",
	"a.description AS account_description",
	"a.account_type AS account_type",
	"a.balance AS account_balance",
	"a.created_at AS account_created_at",
	"a.updated_at AS account_updated_at",
}

type joinedRow struct {
	ID                 uuid.UUID `db:"id"`
	AccountID          uuid.UUID `db:"account_id"`
	Title              string    `db:"title"`
	Description        string    `db:"description"`
	Amount             int64     `db:"amount"`
	CreatedAt          time.Time `db:"created_at"`
	UpdatedAt          time.Time `db:"updated_at"`
	AccountUserID      uuid.UUID `db:"account_user_id"`
	AccountTitle       string    `db:"account_title"`
	AccountDescription string    `db:"account_description"`
	AccountType        string    `db:"account_type"`
	AccountBalance     int64     `db:"account_balance"`
	AccountCreatedAt   time.Time `db:"account_created_at"`
	AccountUpdatedAt   time.Time `db:"account_updated_at"`
}

func (row *joinedRow) toTransactionWithAccount() *TransactionWithAccount {
	return &TransactionWithAccount{
		Transaction: Transaction{
			ID:          row.ID,
			AccountID:   row.AccountID,
			Title:       row.Title,
			Description: row.Description,
			Amount:      row.Amount,
			CreatedAt:   row.CreatedAt,
			UpdatedAt:   row.UpdatedAt,
		},
		Account: AccountRef{
			ID:          row.AccountID,
			UserID:      row.AccountUserID,
			Title:       row.AccountTitle,
			Description: row.AccountDescription,
			AccountType: row.AccountType,
			Balance:     row.AccountBalance,
			CreatedAt:   row.AccountCreatedAt,
			UpdatedAt:   row.AccountUpdatedAt,
		},
	}
}

type Reader struct {
	exec bob.Executor
}

var _ ITransactionReader = (*Reader)(nil)

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

// joinedQuery selects live transactions joined with their live owning account.
func joinedQuery(queryMods ...bob.Mod[*dialect.SelectQuery]) bob.BaseQuery[*dialect.SelectQuery] {
	queryMods = append([]bob.Mod[*dialect.SelectQuery]{
		sm.Columns(joinedColumns...),
		sm.From(TableName).As("t"),
		sm.InnerJoin("accounts").As("a").On(psql.Quote("a", "id").EQ(psql.Quote("t", "account_id"))),
		sm.Where(psql.Quote("t", "deleted_at").IsNull()),
		sm.Where(psql.Quote("a", "deleted_at").IsNull()),
	}, queryMods...)
	return psql.Select(queryMods...)
}

// FindByID returns the live transaction when its account belongs to userID, or nil.
func (r *Reader) FindByID(ctx context.Context, userID, id uuid.UUID) (*TransactionWithAccount, error) {
	q := joinedQuery(
		sm.Where(psql.Quote("t", "id").EQ(psql.Arg(id))),
		sm.Where(psql.Quote("a", "user_id").EQ(psql.Arg(userID))),
	)
	row, err := bob.One(ctx, r.exec, q, scan.StructMapper[*joinedRow]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row.toTransactionWithAccount(), nil
}

// List returns one page of an account's live transactions, newest first.
func (r *Reader) List(ctx context.Context, filter *TransactionFilter) ([]*TransactionWithAccount, error) {
	limit := defaultListLimit
	if filter.Limit > 0 {
		limit = filter.Limit
	}

	q := joinedQuery(
		sm.Where(psql.Quote("t", "account_id").EQ(psql.Arg(filter.AccountID))),
		sm.OrderBy(psql.Quote("t", "created_at")).Desc(),
		sm.OrderBy(psql.Quote("t", "id")).Desc(),
		sm.Limit(limit),
		sm.Offset(filter.Offset),
	)
	rows, err := bob.All(ctx, r.exec, q, scan.StructMapper[*joinedRow]())
	if err != nil {
		return nil, err
	}

	result := make([]*TransactionWithAccount, len(rows))
	for i, row := range rows {
		result[i] = row.toTransactionWithAccount()
	}
	return result, nil
}

func (r *Reader) Count(ctx context.Context, accountID uuid.UUID) (int64, error) {
	q := psql.Select(
		sm.Columns("count(*)"),
		sm.From(TableName),
		sm.Where(psql.Quote("account_id").EQ(psql.Arg(accountID))),
		sm.Where(psql.Quote("deleted_at").IsNull()),
	)
	return bob.One(ctx, r.exec, q, scan.SingleColumnMapper[int64])
}

// ListByAccountIDs returns the live transactions of all given accounts, newest first.
func (r *Reader) ListByAccountIDs(ctx context.Context, accountIDs []uuid.UUID) ([]*Transaction, error) {
	if len(accountIDs) == 0 {
		return nil, nil
	}

	ids := make([]any, len(accountIDs))
	for i, id := range accountIDs {
		ids[i] = id
	}

	q := psql.Select(
		sm.Columns(transactionColumns...),
		sm.From(TableName),
		sm.Where(psql.Quote("account_id").In(psql.Arg(ids...))),
		sm.Where(psql.Quote("deleted_at").IsNull()),
		sm.OrderBy(psql.Quote("created_at")).Desc(),
		sm.OrderBy(psql.Quote("id")).Desc(),
	)
	return bob.All(ctx, r.exec, q, scan.StructMapper[*Transaction]())
}

// Summarize totals an account's live transactions per calendar day or month.
func (r *Reader) Summarize(ctx context.Context, accountID uuid.UUID, period Period) ([]*PeriodTotal, error) {
	var periodColumn string
	switch period {
	case PeriodDay:
		periodColumn = "to_char(created_at, 'YYYY-MM-DD') AS period"
	case PeriodMonth:
		periodColumn = "to_char(created_at, 'YYYY-MM') AS period"
	default:
		return nil, fmt.Errorf("unknown summary period %d", period)
	}

	q := psql.Select(
		sm.Columns(periodColumn, "sum(amount)::bigint AS total_amount", "count(id) AS count"),
		sm.From(TableName),
		sm.Where(psql.Quote("account_id").EQ(psql.Arg(accountID))),
		sm.Where(psql.Quote("deleted_at").IsNull()),
		sm.GroupBy("period"),
		sm.OrderBy("period").Asc(),
	)
	return bob.All(ctx, r.exec, q, scan.StructMapper[*PeriodTotal]())
}

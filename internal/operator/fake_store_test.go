package operator

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/account"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
	"github.com/carson-networks/ledger-server/internal/storage/user"
)

var errInjected = errors.New("injected failure")

type memState struct {
	users        map[uuid.UUID]user.User
	accounts     map[uuid.UUID]account.Account
	transactions map[uuid.UUID]transaction.Transaction
}

func (s memState) clone() memState {
	c := memState{
		users:        make(map[uuid.UUID]user.User, len(s.users)),
		accounts:     make(map[uuid.UUID]account.Account, len(s.accounts)),
		transactions: make(map[uuid.UUID]transaction.Transaction, len(s.transactions)),
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.accounts {
		c.accounts[k] = v
	}
	for k, v := range s.transactions {
		c.transactions[k] = v
	}
	return c
}

// memStore is an in-memory WriterSource. A unit of work holds the store lock from
// Write until Commit or Rollback, which stands in for row locks.
type memStore struct {
	mu    sync.Mutex
	state memState

	failBalanceUpdate bool
}

func newMemStore() *memStore {
	return &memStore{
		state: memState{
			users:        map[uuid.UUID]user.User{},
			accounts:     map[uuid.UUID]account.Account{},
			transactions: map[uuid.UUID]transaction.Transaction{},
		},
	}
}

func (m *memStore) Write(ctx context.Context) (*storage.Writer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	uow := &memUnit{store: m, snapshot: m.state.clone()}
	return storage.NewWriterWith(uow, memUsers{m}, memAccounts{m}, memTransactions{m}), nil
}

// account reads committed state outside of any unit of work.
func (m *memStore) account(id uuid.UUID) account.Account {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.accounts[id]
}

func (m *memStore) liveTotal(accountID uuid.UUID) (int64, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var total int64
	var count int
	for _, t := range m.state.transactions {
		if t.AccountID == accountID && !t.IsDeleted() {
			total += t.Amount
			count++
		}
	}
	return total, count
}

func (m *memStore) setFailBalanceUpdate(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failBalanceUpdate = fail
}

type memUnit struct {
	store    *memStore
	snapshot memState
	done     bool
}

func (u *memUnit) Commit(context.Context) error {
	if u.done {
		return errors.New("unit of work already finished")
	}
	u.done = true
	u.store.mu.Unlock()
	return nil
}

func (u *memUnit) Rollback(context.Context) error {
	if u.done {
		return errors.New("unit of work already finished")
	}
	u.done = true
	u.store.state = u.snapshot
	u.store.mu.Unlock()
	return nil
}

func newID() uuid.UUID {
	return uuid.Must(uuid.NewV4())
}

func deletedAt() *time.Time {
	now := time.Now()
	return &now
}

type memUsers struct{ m *memStore }

func (s memUsers) FindByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	u, ok := s.m.state.users[id]
	if !ok || u.IsDeleted() {
		return nil, nil
	}
	return &u, nil
}

func (s memUsers) FindByUsername(_ context.Context, username string, includeDeleted bool) (*user.User, error) {
	for _, u := range s.m.state.users {
		if u.Username == username && (includeDeleted || !u.IsDeleted()) {
			return &u, nil
		}
	}
	return nil, nil
}

func (s memUsers) FindByIDForUpdate(_ context.Context, id uuid.UUID) (*user.User, error) {
	u, ok := s.m.state.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (s memUsers) Insert(_ context.Context, create *user.UserCreate) (*user.User, error) {
	lastLogin := create.LastLogin
	u := user.User{
		ID:        newID(),
		Username:  create.Username,
		Name:      create.Name,
		Password:  create.Password,
		LastLogin: &lastLogin,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	s.m.state.users[u.ID] = u
	return &u, nil
}

func (s memUsers) Update(_ context.Context, id uuid.UUID, patch *user.UserPatch) (*user.User, error) {
	u, ok := s.m.state.users[id]
	if !ok || u.IsDeleted() {
		return nil, nil
	}
	if v, ok := patch.Username.Get(); ok {
		u.Username = v
	}
	if v, ok := patch.Name.Get(); ok {
		u.Name = v
	}
	if v, ok := patch.Password.Get(); ok {
		u.Password = v
	}
	u.UpdatedAt = time.Now()
	s.m.state.users[id] = u
	return &u, nil
}

func (s memUsers) SoftDelete(_ context.Context, id uuid.UUID) error {
	u := s.m.state.users[id]
	u.DeletedAt = deletedAt()
	s.m.state.users[id] = u
	return nil
}

func (s memUsers) Restore(_ context.Context, id uuid.UUID) error {
	u := s.m.state.users[id]
	u.DeletedAt = nil
	s.m.state.users[id] = u
	return nil
}

func (s memUsers) TouchLastLogin(_ context.Context, id uuid.UUID, at time.Time) error {
	u, ok := s.m.state.users[id]
	if !ok {
		return nil
	}
	u.LastLogin = &at
	s.m.state.users[id] = u
	return nil
}

type memAccounts struct{ m *memStore }

func (s memAccounts) FindByID(_ context.Context, userID, id uuid.UUID) (*account.Account, error) {
	a, ok := s.m.state.accounts[id]
	if !ok || !a.OwnedBy(userID) {
		return nil, nil
	}
	return &a, nil
}

func (s memAccounts) List(_ context.Context, filter *account.AccountFilter) ([]*account.Account, error) {
	var result []*account.Account
	for _, a := range s.m.state.accounts {
		if a.OwnedBy(filter.UserID) {
			result = append(result, &a)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Title < result[j].Title })
	return result, nil
}

func (s memAccounts) Count(ctx context.Context, userID uuid.UUID) (int64, error) {
	list, err := s.List(ctx, &account.AccountFilter{UserID: userID})
	return int64(len(list)), err
}

func (s memAccounts) FindByIDForUpdate(_ context.Context, id uuid.UUID) (*account.Account, error) {
	a, ok := s.m.state.accounts[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (s memAccounts) Insert(_ context.Context, create *account.AccountCreate) (*account.Account, error) {
	a := account.Account{
		ID:             newID(),
		UserID:         create.UserID,
		Title:          create.Title,
		Description:    create.Description,
		AccountType:    create.AccountType,
		Balance:        create.Balance,
		OpeningBalance: create.Balance,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
	s.m.state.accounts[a.ID] = a
	return &a, nil
}

func (s memAccounts) Update(_ context.Context, id uuid.UUID, patch *account.AccountPatch) (*account.Account, error) {
	a, ok := s.m.state.accounts[id]
	if !ok || a.IsDeleted() {
		return nil, nil
	}
	if v, ok := patch.Title.Get(); ok {
		a.Title = v
	}
	if v, ok := patch.Description.Get(); ok {
		a.Description = v
	}
	if v, ok := patch.AccountType.Get(); ok {
		a.AccountType = v
	}
	if v, ok := patch.Balance.Get(); ok {
		a.Balance = v
	}
	if v, ok := patch.OpeningBalance.Get(); ok {
		a.OpeningBalance = v
	}
	a.UpdatedAt = time.Now()
	s.m.state.accounts[id] = a
	return &a, nil
}

func (s memAccounts) UpdateBalance(_ context.Context, id uuid.UUID, balance int64) error {
	if s.m.failBalanceUpdate {
		return errInjected
	}
	a := s.m.state.accounts[id]
	a.Balance = balance
	s.m.state.accounts[id] = a
	return nil
}

func (s memAccounts) SoftDelete(_ context.Context, id uuid.UUID) error {
	a := s.m.state.accounts[id]
	a.DeletedAt = deletedAt()
	s.m.state.accounts[id] = a
	return nil
}

func (s memAccounts) Restore(_ context.Context, id uuid.UUID) error {
	a := s.m.state.accounts[id]
	a.DeletedAt = nil
	s.m.state.accounts[id] = a
	return nil
}

type memTransactions struct{ m *memStore }

func (s memTransactions) Get(_ context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	t, ok := s.m.state.transactions[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (s memTransactions) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	return s.Get(ctx, id)
}

func (s memTransactions) Insert(_ context.Context, create *transaction.TransactionCreate) (*transaction.Transaction, error) {
	t := transaction.Transaction{
		ID:          newID(),
		AccountID:   create.AccountID,
		Title:       create.Title,
		Description: create.Description,
		Amount:      create.Amount,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	s.m.state.transactions[t.ID] = t
	return &t, nil
}

func (s memTransactions) Update(_ context.Context, id uuid.UUID, patch *transaction.TransactionPatch) (*transaction.Transaction, error) {
	t, ok := s.m.state.transactions[id]
	if !ok || t.IsDeleted() {
		return nil, nil
	}
	if v, ok := patch.Title.Get(); ok {
		t.Title = v
	}
	if v, ok := patch.Description.Get(); ok {
		t.Description = v
	}
	if v, ok := patch.Amount.Get(); ok {
		t.Amount = v
	}
	t.UpdatedAt = time.Now()
	s.m.state.transactions[id] = t
	return &t, nil
}

func (s memTransactions) SoftDelete(_ context.Context, id uuid.UUID) error {
	t := s.m.state.transactions[id]
	t.DeletedAt = deletedAt()
	s.m.state.transactions[id] = t
	return nil
}

func (s memTransactions) Restore(_ context.Context, id uuid.UUID) error {
	t := s.m.state.transactions[id]
	t.DeletedAt = nil
	s.m.state.transactions[id] = t
	return nil
}

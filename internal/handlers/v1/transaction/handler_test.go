package transaction

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/ledger-server/internal/access"
	"github.com/carson-networks/ledger-server/internal/apperror"
	"github.com/carson-networks/ledger-server/internal/handlers/v1/response"
	"github.com/carson-networks/ledger-server/internal/service"
)

type mockTransactionService struct {
	mock.Mock
}

func (m *mockTransactionService) CreateTransaction(ctx context.Context, userID uuid.UUID, create service.TransactionCreate) (*service.Transaction, error) {
	args := m.Called(ctx, userID, create)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Transaction), args.Error(1)
}

func (m *mockTransactionService) GetTransaction(ctx context.Context, userID, id uuid.UUID) (*service.Transaction, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Transaction), args.Error(1)
}

func (m *mockTransactionService) ListTransactions(ctx context.Context, userID, accountID uuid.UUID, page int) (*service.TransactionPage, error) {
	args := m.Called(ctx, userID, accountID, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.TransactionPage), args.Error(1)
}

func (m *mockTransactionService) EditTransaction(ctx context.Context, userID, id uuid.UUID, edit service.TransactionEdit) (*service.Transaction, error) {
	args := m.Called(ctx, userID, id, edit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Transaction), args.Error(1)
}

func (m *mockTransactionService) DeleteTransaction(ctx context.Context, userID, id uuid.UUID) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *mockTransactionService) RestoreTransaction(ctx context.Context, userID, id uuid.UUID) error {
	return m.Called(ctx, userID, id).Error(0)
}

var callerID = uuid.Must(uuid.NewV4())

// newTestAPI registers the handler behind a middleware that authenticates every call
// as callerID.
func newTestAPI(t *testing.T, svc transactionManager) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	api.UseMiddleware(func(ctx huma.Context, next func(huma.Context)) {
		next(huma.WithContext(ctx, access.WithIdentity(ctx.Context(), access.Identity{UserID: callerID})))
	})
	NewHandler(svc).Register(api)
	return api
}

func sampleTransaction(accountID uuid.UUID) *service.Transaction {
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	return &service.Transaction{
		ID:        uuid.Must(uuid.NewV4()),
		AccountID: accountID,
		Title:     "Coffee",
		Amount:    -450,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func decodeError(t *testing.T, resp interface{ Bytes() []byte }) response.ErrorBody {
	t.Helper()
	var body response.ErrorBody
	require.NoError(t, json.Unmarshal(resp.Bytes(), &body))
	return body
}

func TestParseCreateTransactionInput_ValidInput(t *testing.T) {
	accountID := uuid.Must(uuid.NewV4())
	amount := int64(-1250)

	create, err := parseCreateTransactionInput(&CreateTransactionInput{Body: CreateTransactionBody{
		AccountID: accountID.String(),
		Title:     "Groceries",
		Amount:    &amount,
	}})
	require.NoError(t, err)
	assert.Equal(t, accountID, create.AccountID)
	assert.Equal(t, "Groceries", create.Title)
	assert.Equal(t, int64(-1250), create.Amount)
}

func TestParseCreateTransactionInput_ZeroAmount(t *testing.T) {
	amount := int64(0)

	create, err := parseCreateTransactionInput(&CreateTransactionInput{Body: CreateTransactionBody{
		AccountID: uuid.Must(uuid.NewV4()).String(),
		Title:     "Placeholder",
		Amount:    &amount,
	}})
	require.NoError(t, err)
	assert.Zero(t, create.Amount)
}

func TestHTTP_CreateTransaction_Success(t *testing.T) {
	accountID := uuid.Must(uuid.NewV4())
	created := sampleTransaction(accountID)

	mockSvc := new(mockTransactionService)
	mockSvc.On("CreateTransaction", mock.Anything, callerID, service.TransactionCreate{
		AccountID: accountID,
		Title:     "Coffee",
		Amount:    -450,
	}).Return(created, nil)

	resp := newTestAPI(t, mockSvc).Post("/api/v1/transaction", map[string]any{
		"accountId": accountID.String(),
		"title":     "Coffee",
		"amount":    -450,
	})

	assert.Equal(t, http.StatusOK, resp.Code)
	var body TransactionResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, response.StatusSuccess, body.Status)
	assert.Equal(t, "Transaction created successfully", body.Message)
	assert.Equal(t, created.ID.String(), body.Data.ID)
	assert.Nil(t, body.Data.Account)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_CreateTransaction_MissingAmount(t *testing.T) {
	mockSvc := new(mockTransactionService)

	resp := newTestAPI(t, mockSvc).Post("/api/v1/transaction", map[string]any{
		"accountId": uuid.Must(uuid.NewV4()).String(),
		"title":     "Coffee",
	})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	body := decodeError(t, resp.Body)
	assert.Equal(t, response.StatusFailed, body.Status)
	assert.Contains(t, body.Message, "amount")
	mockSvc.AssertNotCalled(t, "CreateTransaction")
}

func TestHTTP_CreateTransaction_InvalidAccountID(t *testing.T) {
	mockSvc := new(mockTransactionService)

	resp := newTestAPI(t, mockSvc).Post("/api/v1/transaction", map[string]any{
		"accountId": "not-a-uuid",
		"title":     "Coffee",
		"amount":    1,
	})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	mockSvc.AssertNotCalled(t, "CreateTransaction")
}

func TestHTTP_CreateTransaction_ForeignAccount(t *testing.T) {
	mockSvc := new(mockTransactionService)
	mockSvc.On("CreateTransaction", mock.Anything, callerID, mock.Anything).
		Return(nil, apperror.NotFound("Account not found"))

	resp := newTestAPI(t, mockSvc).Post("/api/v1/transaction", map[string]any{
		"accountId": uuid.Must(uuid.NewV4()).String(),
		"title":     "Coffee",
		"amount":    1,
	})

	assert.Equal(t, http.StatusNotFound, resp.Code)
	body := decodeError(t, resp.Body)
	assert.Equal(t, "Account not found", body.Message)
}

func TestHTTP_GetTransaction_IncludesAccount(t *testing.T) {
	accountID := uuid.Must(uuid.NewV4())
	entry := sampleTransaction(accountID)
	entry.Account = &service.Account{ID: accountID, Title: "Wallet", AccountType: "cash", Balance: 9550}

	mockSvc := new(mockTransactionService)
	mockSvc.On("GetTransaction", mock.Anything, callerID, entry.ID).Return(entry, nil)

	resp := newTestAPI(t, mockSvc).Get("/api/v1/transaction/" + entry.ID.String())

	assert.Equal(t, http.StatusOK, resp.Code)
	var body TransactionResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.NotNil(t, body.Data.Account)
	assert.Equal(t, "Wallet", body.Data.Account.Title)
	assert.Equal(t, int64(9550), body.Data.Account.Balance)
}

func TestHTTP_ListTransactions_Meta(t *testing.T) {
	accountID := uuid.Must(uuid.NewV4())
	page := &service.TransactionPage{
		Transactions: []service.Transaction{*sampleTransaction(accountID), *sampleTransaction(accountID)},
		Meta:         service.PageMeta{TotalPage: 3, CurrentPage: 3},
	}

	mockSvc := new(mockTransactionService)
	mockSvc.On("ListTransactions", mock.Anything, callerID, accountID, 3).Return(page, nil)

	resp := newTestAPI(t, mockSvc).Get("/api/v1/transactions/" + accountID.String() + "/3")

	assert.Equal(t, http.StatusOK, resp.Code)
	var body ListTransactionsResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Len(t, body.Data, 2)
	assert.Equal(t, 3, body.Meta.TotalPage)
	assert.Equal(t, 3, body.Meta.CurrentPage)
}

func TestHTTP_ListTransactions_PageZero(t *testing.T) {
	mockSvc := new(mockTransactionService)

	resp := newTestAPI(t, mockSvc).Get("/api/v1/transactions/" + uuid.Must(uuid.NewV4()).String() + "/0")

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	mockSvc.AssertNotCalled(t, "ListTransactions")
}

func TestHTTP_EditTransaction_OnlyAmount(t *testing.T) {
	accountID := uuid.Must(uuid.NewV4())
	updated := sampleTransaction(accountID)
	updated.Amount = 40

	mockSvc := new(mockTransactionService)
	mockSvc.On("EditTransaction", mock.Anything, callerID, updated.ID, mock.MatchedBy(func(edit service.TransactionEdit) bool {
		amount, ok := edit.Amount.Get()
		return ok && amount == 40 && edit.Title.IsUnset() && edit.Description.IsUnset()
	})).Return(updated, nil)

	resp := newTestAPI(t, mockSvc).Put("/api/v1/transaction/"+updated.ID.String(), map[string]any{"amount": 40})

	assert.Equal(t, http.StatusOK, resp.Code)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_DeleteTransaction(t *testing.T) {
	id := uuid.Must(uuid.NewV4())
	mockSvc := new(mockTransactionService)
	mockSvc.On("DeleteTransaction", mock.Anything, callerID, id).Return(nil)

	resp := newTestAPI(t, mockSvc).Delete("/api/v1/transaction/" + id.String())

	assert.Equal(t, http.StatusOK, resp.Code)
	var body response.Envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Deleted successfully", body.Message)
}

func TestHTTP_RestoreTransaction_NotFound(t *testing.T) {
	id := uuid.Must(uuid.NewV4())
	mockSvc := new(mockTransactionService)
	mockSvc.On("RestoreTransaction", mock.Anything, callerID, id).Return(apperror.NotFound("Transaction not found"))

	resp := newTestAPI(t, mockSvc).Put("/api/v1/transaction/restore/" + id.String())

	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Equal(t, response.StatusFailed, decodeError(t, resp.Body).Status)
}

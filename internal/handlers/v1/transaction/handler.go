package transaction

import (
	"context"
	"net/http"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/access"
	"github.com/carson-networks/ledger-server/internal/handlers/v1/response"
	"github.com/carson-networks/ledger-server/internal/service"
)

var bearer = []map[string][]string{{access.SecurityScheme: {}}}

// transactionManager is the interface for the caller's transactions.
type transactionManager interface {
	CreateTransaction(ctx context.Context, userID uuid.UUID, create service.TransactionCreate) (*service.Transaction, error)
	GetTransaction(ctx context.Context, userID, id uuid.UUID) (*service.Transaction, error)
	ListTransactions(ctx context.Context, userID, accountID uuid.UUID, page int) (*service.TransactionPage, error)
	EditTransaction(ctx context.Context, userID, id uuid.UUID, edit service.TransactionEdit) (*service.Transaction, error)
	DeleteTransaction(ctx context.Context, userID, id uuid.UUID) error
	RestoreTransaction(ctx context.Context, userID, id uuid.UUID) error
}

// Handler serves the /api/v1/transaction operations.
type Handler struct {
	TransactionService transactionManager
}

func NewHandler(svc transactionManager) *Handler {
	return &Handler{TransactionService: svc}
}

func (h *Handler) Register(api huma.API) {
	h.registerCreate(api)
	h.registerList(api)
	h.registerGet(api)
	h.registerEdit(api)
	h.registerDelete(api)
	h.registerRestore(api)
}

// Transaction is the API response model for a transaction.
type Transaction struct {
	ID          string    `json:"id" doc:"Transaction UUID"`
	AccountID   string    `json:"accountId" doc:"Account UUID"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Amount      int64     `json:"amount" doc:"Signed amount in the smallest currency unit"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Account     *Account  `json:"account,omitempty" doc:"Owning account, on reads"`
}

// Account is the owning account as shown next to a transaction.
type Account struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	AccountType string `json:"accountType"`
	Balance     int64  `json:"balance"`
}

func transactionFromService(t *service.Transaction) Transaction {
	result := Transaction{
		ID:          t.ID.String(),
		AccountID:   t.AccountID.String(),
		Title:       t.Title,
		Description: t.Description,
		Amount:      t.Amount,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	if t.Account != nil {
		result.Account = &Account{
			ID:          t.Account.ID.String(),
			Title:       t.Account.Title,
			Description: t.Account.Description,
			AccountType: t.Account.AccountType,
			Balance:     t.Account.Balance,
		}
	}
	return result
}

// TransactionResponse is the response body of single-transaction operations.
type TransactionResponse struct {
	response.Envelope
	Data Transaction `json:"data"`
}

// TransactionOutput is the Huma output of single-transaction operations.
type TransactionOutput struct {
	Body TransactionResponse
}

// MessageOutput is the Huma output of operations that only report success.
type MessageOutput struct {
	Body response.Envelope
}

// IDInput addresses one transaction.
type IDInput struct {
	ID string `path:"id" format:"uuid" doc:"Transaction UUID"`
}

func parseIDs(ctx context.Context, rawID string) (userID, id uuid.UUID, err error) {
	userID, err = access.CallerID(ctx)
	if err != nil {
		return uuid.Nil, uuid.Nil, response.Error(ctx, err)
	}
	id, err = uuid.FromString(rawID)
	if err != nil {
		return uuid.Nil, uuid.Nil, huma.NewError(http.StatusBadRequest, "invalid id", err)
	}
	return userID, id, nil
}

func optional[T any](v *T) omit.Val[T] {
	if v == nil {
		return omit.Val[T]{}
	}
	return omit.From(*v)
}

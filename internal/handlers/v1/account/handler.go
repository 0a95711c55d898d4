package account

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

// accountManager is the interface for the caller's accounts.
type accountManager interface {
	CreateAccount(ctx context.Context, userID uuid.UUID, create service.AccountCreate) (*service.Account, error)
	GetAccount(ctx context.Context, userID, id uuid.UUID) (*service.Account, error)
	ListAccounts(ctx context.Context, userID uuid.UUID, page int) (*service.AccountPage, error)
	EditAccount(ctx context.Context, userID, id uuid.UUID, edit service.AccountEdit) (*service.Account, error)
	DeleteAccount(ctx context.Context, userID, id uuid.UUID) error
	RestoreAccount(ctx context.Context, userID, id uuid.UUID) error
}

// Handler serves the /api/v1/account operations.
type Handler struct {
	AccountService accountManager
}

func NewHandler(svc accountManager) *Handler {
	return &Handler{AccountService: svc}
}

func (h *Handler) Register(api huma.API) {
	h.registerCreate(api)
	h.registerList(api)
	h.registerGet(api)
	h.registerEdit(api)
	h.registerDelete(api)
	h.registerRestore(api)
}

// Account is the API response model for an account.
type Account struct {
	ID           string        `json:"id" doc:"Account UUID"`
	UserID       string        `json:"userId" doc:"Owner UUID"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	AccountType  string        `json:"accountType"`
	Balance      int64         `json:"balance" doc:"Balance in the smallest currency unit"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
	Transactions []Transaction `json:"transactions,omitempty" doc:"Live transactions, on reads"`
}

// Transaction is a live transaction listed under its account.
type Transaction struct {
	ID          string    `json:"id" doc:"Transaction UUID"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Amount      int64     `json:"amount" doc:"Signed amount in the smallest currency unit"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func accountFromService(a *service.Account) Account {
	result := Account{
		ID:          a.ID.String(),
		UserID:      a.UserID.String(),
		Title:       a.Title,
		Description: a.Description,
		AccountType: a.AccountType,
		Balance:     a.Balance,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
	if a.Transactions != nil {
		result.Transactions = make([]Transaction, len(a.Transactions))
		for i, t := range a.Transactions {
			result.Transactions[i] = Transaction{
				ID:          t.ID.String(),
				Title:       t.Title,
				Description: t.Description,
				Amount:      t.Amount,
				CreatedAt:   t.CreatedAt,
				UpdatedAt:   t.UpdatedAt,
			}
		}
	}
	return result
}

// AccountResponse is the response body of single-account operations.
type AccountResponse struct {
	response.Envelope
	Data Account `json:"data"`
}

// AccountOutput is the Huma output of single-account operations.
type AccountOutput struct {
	Body AccountResponse
}

// MessageOutput is the Huma output of operations that only report success.
type MessageOutput struct {
	Body response.Envelope
}

// IDInput addresses one account.
type IDInput struct {
	ID string `path:"id" format:"uuid" doc:"Account UUID"`
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

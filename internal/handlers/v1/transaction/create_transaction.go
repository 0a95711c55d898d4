package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/access"
	"github.com/carson-networks/ledger-server/internal/handlers/v1/response"
	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/service"
)

// CreateTransactionBody is the request body for creating a transaction.
type CreateTransactionBody struct {
	AccountID   string `json:"accountId" format:"uuid" doc:"Account UUID"`
	Title       string `json:"title" minLength:"1" doc:"Short label"`
	Description string `json:"description,omitempty" doc:"Free-form description"`
	Amount      *int64 `json:"amount" required:"true" doc:"Signed amount in the smallest currency unit"`
}

// CreateTransactionInput is the Huma input for creating a transaction.
type CreateTransactionInput struct {
	Body CreateTransactionBody
}

func (h *Handler) registerCreate(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-transaction",
		Method:      http.MethodPost,
		Path:        "/api/v1/transaction",
		Summary:     "Create transaction",
		Description: "Records a transaction and applies its amount to the account balance.",
		Tags:        []string{"Transactions"},
		Security:    bearer,
	}, h.handleCreate)
}

// parseCreateTransactionInput converts the API input into the service input.
func parseCreateTransactionInput(input *CreateTransactionInput) (service.TransactionCreate, error) {
	accountID, err := uuid.FromString(input.Body.AccountID)
	if err != nil {
		return service.TransactionCreate{}, huma.NewError(http.StatusBadRequest, "invalid accountId", err)
	}
	if input.Body.Amount == nil {
		return service.TransactionCreate{}, huma.NewError(http.StatusBadRequest, "amount is required")
	}

	return service.TransactionCreate{
		AccountID:   accountID,
		Title:       input.Body.Title,
		Description: input.Body.Description,
		Amount:      *input.Body.Amount,
	}, nil
}

func (h *Handler) handleCreate(ctx context.Context, input *CreateTransactionInput) (*TransactionOutput, error) {
	logData := logging.GetLogData(ctx)

	userID, err := access.CallerID(ctx)
	if err != nil {
		return nil, response.Error(ctx, err)
	}

	create, err := parseCreateTransactionInput(input)
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("createTransactionMs")
	}
	created, err := h.TransactionService.CreateTransaction(ctx, userID, create)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, response.Error(ctx, err)
	}

	if logData != nil {
		logData.AddData("transactionID", created.ID.String())
	}

	return &TransactionOutput{Body: TransactionResponse{
		Envelope: response.Success("Transaction created successfully"),
		Data:     transactionFromService(created),
	}}, nil
}

package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/handlers/v1/response"
	"github.com/carson-networks/ledger-server/internal/service"
)

// EditTransactionBody is the request body for editing a transaction. Absent fields are
// kept.
type EditTransactionBody struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Amount      *int64  `json:"amount,omitempty" doc:"New amount; the balance moves by the difference"`
}

// EditTransactionInput is the Huma input for editing a transaction.
type EditTransactionInput struct {
	ID   string `path:"id" format:"uuid" doc:"Transaction UUID"`
	Body EditTransactionBody
}

func (h *Handler) registerEdit(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "edit-transaction",
		Method:      http.MethodPut,
		Path:        "/api/v1/transaction/{id}",
		Summary:     "Edit transaction",
		Tags:        []string{"Transactions"},
		Security:    bearer,
	}, h.handleEdit)
}

func (h *Handler) handleEdit(ctx context.Context, input *EditTransactionInput) (*TransactionOutput, error) {
	userID, id, err := parseIDs(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	entry, err := h.TransactionService.EditTransaction(ctx, userID, id, service.TransactionEdit{
		Title:       optional(input.Body.Title),
		Description: optional(input.Body.Description),
		Amount:      optional(input.Body.Amount),
	})
	if err != nil {
		return nil, response.Error(ctx, err)
	}

	return &TransactionOutput{Body: TransactionResponse{
		Envelope: response.Success("Transaction updated successfully"),
		Data:     transactionFromService(entry),
	}}, nil
}

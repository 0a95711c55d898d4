package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/handlers/v1/response"
)

func (h *Handler) registerGet(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-transaction",
		Method:      http.MethodGet,
		Path:        "/api/v1/transaction/{id}",
		Summary:     "Get transaction",
		Description: "Returns a live transaction of the caller with its owning account.",
		Tags:        []string{"Transactions"},
		Security:    bearer,
	}, h.handleGet)
}

func (h *Handler) handleGet(ctx context.Context, input *IDInput) (*TransactionOutput, error) {
	userID, id, err := parseIDs(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	entry, err := h.TransactionService.GetTransaction(ctx, userID, id)
	if err != nil {
		return nil, response.Error(ctx, err)
	}

	return &TransactionOutput{Body: TransactionResponse{
		Envelope: response.Success("Transaction retrieved successfully"),
		Data:     transactionFromService(entry),
	}}, nil
}

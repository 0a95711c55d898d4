package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/handlers/v1/response"
)

func (h *Handler) registerRestore(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "restore-transaction",
		Method:      http.MethodPut,
		Path:        "/api/v1/transaction/restore/{id}",
		Summary:     "Restore transaction",
		Description: "Clears the tombstone and puts the amount back into the account balance.",
		Tags:        []string{"Transactions"},
		Security:    bearer,
	}, h.handleRestore)
}

func (h *Handler) handleRestore(ctx context.Context, input *IDInput) (*MessageOutput, error) {
	userID, id, err := parseIDs(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if err = h.TransactionService.RestoreTransaction(ctx, userID, id); err != nil {
		return nil, response.Error(ctx, err)
	}

	return &MessageOutput{Body: response.Success("Restored successfully")}, nil
}

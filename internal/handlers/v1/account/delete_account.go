package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/handlers/v1/response"
)

func (h *Handler) registerDelete(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "delete-account",
		Method:      http.MethodDelete,
		Path:        "/api/v1/account/{id}",
		Summary:     "Delete an account",
		Description: "Tombstones the account. Its transactions are kept.",
		Tags:        []string{"Accounts"},
		Security:    bearer,
	}, h.handleDelete)
}

func (h *Handler) handleDelete(ctx context.Context, input *IDInput) (*MessageOutput, error) {
	userID, id, err := parseIDs(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if err = h.AccountService.DeleteAccount(ctx, userID, id); err != nil {
		return nil, response.Error(ctx, err)
	}

	return &MessageOutput{Body: response.Success("Deleted successfully")}, nil
}

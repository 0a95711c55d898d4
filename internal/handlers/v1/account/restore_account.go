package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/handlers/v1/response"
)

func (h *Handler) registerRestore(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "restore-account",
		Method:      http.MethodPut,
		Path:        "/api/v1/account/restore/{id}",
		Summary:     "Restore an account",
		Tags:        []string{"Accounts"},
		Security:    bearer,
	}, h.handleRestore)
}

func (h *Handler) handleRestore(ctx context.Context, input *IDInput) (*MessageOutput, error) {
	userID, id, err := parseIDs(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if err = h.AccountService.RestoreAccount(ctx, userID, id); err != nil {
		return nil, response.Error(ctx, err)
	}

	return &MessageOutput{Body: response.Success("Restored successfully")}, nil
}

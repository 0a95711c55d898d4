package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/handlers/v1/response"
)

func (h *Handler) registerGet(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-account",
		Method:      http.MethodGet,
		Path:        "/api/v1/account/{id}",
		Summary:     "Get an account",
		Description: "Returns a live account of the caller with its live transactions.",
		Tags:        []string{"Accounts"},
		Security:    bearer,
	}, h.handleGet)
}

func (h *Handler) handleGet(ctx context.Context, input *IDInput) (*AccountOutput, error) {
	userID, id, err := parseIDs(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	acct, err := h.AccountService.GetAccount(ctx, userID, id)
	if err != nil {
		return nil, response.Error(ctx, err)
	}

	return &AccountOutput{Body: AccountResponse{
		Envelope: response.Success("Account retrieved successfully"),
		Data:     accountFromService(acct),
	}}, nil
}

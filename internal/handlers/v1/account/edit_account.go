package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/handlers/v1/response"
	"github.com/carson-networks/ledger-server/internal/service"
)

// EditAccountBody is the request body for editing an account. Absent fields are kept.
type EditAccountBody struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	AccountType *string `json:"accountType,omitempty"`
	Balance     *int64  `json:"balance,omitempty" doc:"New balance; the live transactions are kept"`
}

// EditAccountInput is the Huma input for editing an account.
type EditAccountInput struct {
	ID   string `path:"id" format:"uuid" doc:"Account UUID"`
	Body EditAccountBody
}

func (h *Handler) registerEdit(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "edit-account",
		Method:      http.MethodPut,
		Path:        "/api/v1/account/{id}",
		Summary:     "Edit an account",
		Tags:        []string{"Accounts"},
		Security:    bearer,
	}, h.handleEdit)
}

func (h *Handler) handleEdit(ctx context.Context, input *EditAccountInput) (*AccountOutput, error) {
	userID, id, err := parseIDs(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	acct, err := h.AccountService.EditAccount(ctx, userID, id, service.AccountEdit{
		Title:       optional(input.Body.Title),
		Description: optional(input.Body.Description),
		AccountType: optional(input.Body.AccountType),
		Balance:     optional(input.Body.Balance),
	})
	if err != nil {
		return nil, response.Error(ctx, err)
	}

	return &AccountOutput{Body: AccountResponse{
		Envelope: response.Success("Account updated successfully"),
		Data:     accountFromService(acct),
	}}, nil
}

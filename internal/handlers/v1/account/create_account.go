package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/access"
	"github.com/carson-networks/ledger-server/internal/handlers/v1/response"
	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/service"
)

// CreateAccountBody is the request body for creating an account.
type CreateAccountBody struct {
	Title       string `json:"title" minLength:"1" doc:"Account title"`
	Description string `json:"description,omitempty" doc:"Free-form description"`
	AccountType string `json:"accountType" minLength:"1" doc:"Free-form classification, e.g. checking"`
	Balance     int64  `json:"balance" doc:"Opening balance in the smallest currency unit"`
}

// CreateAccountInput is the Huma input for creating an account.
type CreateAccountInput struct {
	Body CreateAccountBody
}

func (h *Handler) registerCreate(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-account",
		Method:      http.MethodPost,
		Path:        "/api/v1/account",
		Summary:     "Create an account",
		Description: "Creates an account whose balance starts at the given opening balance.",
		Tags:        []string{"Accounts"},
		Security:    bearer,
	}, h.handleCreate)
}

func (h *Handler) handleCreate(ctx context.Context, input *CreateAccountInput) (*AccountOutput, error) {
	logData := logging.GetLogData(ctx)

	userID, err := access.CallerID(ctx)
	if err != nil {
		return nil, response.Error(ctx, err)
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("createAccountMs")
	}
	created, err := h.AccountService.CreateAccount(ctx, userID, service.AccountCreate{
		Title:       input.Body.Title,
		Description: input.Body.Description,
		AccountType: input.Body.AccountType,
		Balance:     input.Body.Balance,
	})
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, response.Error(ctx, err)
	}

	if logData != nil {
		logData.AddData("accountID", created.ID.String())
	}

	return &AccountOutput{Body: AccountResponse{
		Envelope: response.Success("Account created successfully"),
		Data:     accountFromService(created),
	}}, nil
}

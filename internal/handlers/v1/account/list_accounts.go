package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/access"
	"github.com/carson-networks/ledger-server/internal/handlers/v1/response"
	"github.com/carson-networks/ledger-server/internal/logging"
)

// ListAccountsInput is the Huma input for listing accounts.
type ListAccountsInput struct {
	Page int `path:"page" minimum:"1" doc:"1-indexed page of 10 accounts"`
}

// ListAccountsResponse is the response body for listing accounts.
type ListAccountsResponse struct {
	response.Envelope
	Data []Account     `json:"data"`
	Meta response.Meta `json:"meta"`
}

// ListAccountsOutput is the Huma output for listing accounts.
type ListAccountsOutput struct {
	Body ListAccountsResponse
}

func (h *Handler) registerList(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-accounts",
		Method:      http.MethodGet,
		Path:        "/api/v1/accounts/{page}",
		Summary:     "List accounts",
		Description: "Returns one page of the caller's live accounts with their live transactions.",
		Tags:        []string{"Accounts"},
		Security:    bearer,
	}, h.handleList)
}

func (h *Handler) handleList(ctx context.Context, input *ListAccountsInput) (*ListAccountsOutput, error) {
	logData := logging.GetLogData(ctx)

	userID, err := access.CallerID(ctx)
	if err != nil {
		return nil, response.Error(ctx, err)
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("listAccountsMs")
	}
	page, err := h.AccountService.ListAccounts(ctx, userID, input.Page)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, response.Error(ctx, err)
	}

	if logData != nil {
		logData.AddData("accountCount", len(page.Accounts))
	}

	resp := ListAccountsResponse{
		Envelope: response.Success("Accounts retrieved successfully"),
		Data:     make([]Account, len(page.Accounts)),
		Meta: response.Meta{
			TotalPage:   page.Meta.TotalPage,
			CurrentPage: page.Meta.CurrentPage,
		},
	}
	for i := range page.Accounts {
		resp.Data[i] = accountFromService(&page.Accounts[i])
	}

	return &ListAccountsOutput{Body: resp}, nil
}

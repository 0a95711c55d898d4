package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/access"
	"github.com/carson-networks/ledger-server/internal/handlers/v1/response"
	"github.com/carson-networks/ledger-server/internal/logging"
)

// ListTransactionsInput is the Huma input for listing an account's transactions.
type ListTransactionsInput struct {
	AccountID string `path:"accountId" format:"uuid" doc:"Account UUID"`
	Page      int    `path:"page" minimum:"1" doc:"1-indexed page of 10 transactions"`
}

// ListTransactionsResponse is the response body for listing transactions.
type ListTransactionsResponse struct {
	response.Envelope
	Data []Transaction `json:"data"`
	Meta response.Meta `json:"meta"`
}

// ListTransactionsOutput is the Huma output for listing transactions.
type ListTransactionsOutput struct {
	Body ListTransactionsResponse
}

func (h *Handler) registerList(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-transactions",
		Method:      http.MethodGet,
		Path:        "/api/v1/transactions/{accountId}/{page}",
		Summary:     "List transactions",
		Description: "Returns one page of an account's live transactions, newest first.",
		Tags:        []string{"Transactions"},
		Security:    bearer,
	}, h.handleList)
}

func (h *Handler) handleList(ctx context.Context, input *ListTransactionsInput) (*ListTransactionsOutput, error) {
	logData := logging.GetLogData(ctx)

	userID, err := access.CallerID(ctx)
	if err != nil {
		return nil, response.Error(ctx, err)
	}
	accountID, err := uuid.FromString(input.AccountID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid accountId", err)
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("listTransactionsMs")
	}
	page, err := h.TransactionService.ListTransactions(ctx, userID, accountID, input.Page)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, response.Error(ctx, err)
	}

	if logData != nil {
		logData.AddData("transactionCount", len(page.Transactions))
	}

	resp := ListTransactionsResponse{
		Envelope: response.Success("Transactions retrieved successfully"),
		Data:     make([]Transaction, len(page.Transactions)),
		Meta: response.Meta{
			TotalPage:   page.Meta.TotalPage,
			CurrentPage: page.Meta.CurrentPage,
		},
	}
	for i := range page.Transactions {
		resp.Data[i] = transactionFromService(&page.Transactions[i])
	}

	return &ListTransactionsOutput{Body: resp}, nil
}

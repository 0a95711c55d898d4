package summary

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/access"
	"github.com/carson-networks/ledger-server/internal/handlers/v1/response"
	"github.com/carson-networks/ledger-server/internal/service"
)

var bearer = []map[string][]string{{access.SecurityScheme: {}}}

// summarizer is the interface for per-period roll-ups.
type summarizer interface {
	Daily(ctx context.Context, userID, accountID uuid.UUID) ([]service.SummaryRow, error)
	Monthly(ctx context.Context, userID, accountID uuid.UUID) ([]service.SummaryRow, error)
}

// Handler serves the /api/v1/summary operations.
type Handler struct {
	SummaryService summarizer
}

func NewHandler(svc summarizer) *Handler {
	return &Handler{SummaryService: svc}
}

func (h *Handler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "summary-daily",
		Method:      http.MethodGet,
		Path:        "/api/v1/summary/daily/{accountId}",
		Summary:     "Daily summary",
		Description: "Totals an account's live transactions per calendar day.",
		Tags:        []string{"Summary"},
		Security:    bearer,
	}, h.handle(h.SummaryService.Daily))

	huma.Register(api, huma.Operation{
		OperationID: "summary-monthly",
		Method:      http.MethodGet,
		Path:        "/api/v1/summary/monthly/{accountId}",
		Summary:     "Monthly summary",
		Description: "Totals an account's live transactions per calendar month.",
		Tags:        []string{"Summary"},
		Security:    bearer,
	}, h.handle(h.SummaryService.Monthly))
}

// SummaryInput addresses the summarized account.
type SummaryInput struct {
	AccountID string `path:"accountId" format:"uuid" doc:"Account UUID"`
}

// Row is one period of a summary.
type Row struct {
	Period      string `json:"period" doc:"YYYY-MM-DD or YYYY-MM"`
	TotalAmount int64  `json:"totalAmount"`
	Count       int64  `json:"count"`
	Average     string `json:"average" doc:"Average amount, 2 decimal places"`
}

// SummaryResponse is the response body of both summaries.
type SummaryResponse struct {
	response.Envelope
	Data []Row `json:"data"`
}

// SummaryOutput is the Huma output of both summaries.
type SummaryOutput struct {
	Body SummaryResponse
}

type summarizeFunc func(ctx context.Context, userID, accountID uuid.UUID) ([]service.SummaryRow, error)

func (h *Handler) handle(summarize summarizeFunc) func(context.Context, *SummaryInput) (*SummaryOutput, error) {
	return func(ctx context.Context, input *SummaryInput) (*SummaryOutput, error) {
		userID, err := access.CallerID(ctx)
		if err != nil {
			return nil, response.Error(ctx, err)
		}
		accountID, err := uuid.FromString(input.AccountID)
		if err != nil {
			return nil, huma.NewError(http.StatusBadRequest, "invalid accountId", err)
		}

		rows, err := summarize(ctx, userID, accountID)
		if err != nil {
			return nil, response.Error(ctx, err)
		}

		resp := SummaryResponse{
			Envelope: response.Success("Summary retrieved successfully"),
			Data:     make([]Row, len(rows)),
		}
		for i, row := range rows {
			resp.Data[i] = Row{
				Period:      row.Period,
				TotalAmount: row.TotalAmount,
				Count:       row.Count,
				Average:     row.Average.StringFixed(2),
			}
		}
		return &SummaryOutput{Body: resp}, nil
	}
}

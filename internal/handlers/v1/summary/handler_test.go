package summary

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/ledger-server/internal/access"
	"github.com/carson-networks/ledger-server/internal/apperror"
	"github.com/carson-networks/ledger-server/internal/service"
)

type mockSummaryService struct {
	mock.Mock
}

func (m *mockSummaryService) Daily(ctx context.Context, userID, accountID uuid.UUID) ([]service.SummaryRow, error) {
	args := m.Called(ctx, userID, accountID)
	rows, _ := args.Get(0).([]service.SummaryRow)
	return rows, args.Error(1)
}

func (m *mockSummaryService) Monthly(ctx context.Context, userID, accountID uuid.UUID) ([]service.SummaryRow, error) {
	args := m.Called(ctx, userID, accountID)
	rows, _ := args.Get(0).([]service.SummaryRow)
	return rows, args.Error(1)
}

var callerID = uuid.Must(uuid.NewV4())

func newTestAPI(t *testing.T, svc summarizer) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	api.UseMiddleware(func(ctx huma.Context, next func(huma.Context)) {
		next(huma.WithContext(ctx, access.WithIdentity(ctx.Context(), access.Identity{UserID: callerID})))
	})
	NewHandler(svc).Register(api)
	return api
}

func TestHTTP_Daily(t *testing.T) {
	accountID := uuid.Must(uuid.NewV4())
	mockSvc := new(mockSummaryService)
	mockSvc.On("Daily", mock.Anything, callerID, accountID).Return([]service.SummaryRow{
		{Period: "2025-03-01", TotalAmount: 100, Count: 3, Average: decimal.RequireFromString("33.33")},
		{Period: "2025-03-02", TotalAmount: -50, Count: 2, Average: decimal.NewFromInt(-25)},
	}, nil)

	resp := newTestAPI(t, mockSvc).Get("/api/v1/summary/daily/" + accountID.String())

	assert.Equal(t, http.StatusOK, resp.Code)
	var body SummaryResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Data, 2)
	assert.Equal(t, Row{Period: "2025-03-01", TotalAmount: 100, Count: 3, Average: "33.33"}, body.Data[0])
	assert.Equal(t, "-25.00", body.Data[1].Average)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_Monthly_Empty(t *testing.T) {
	accountID := uuid.Must(uuid.NewV4())
	mockSvc := new(mockSummaryService)
	mockSvc.On("Monthly", mock.Anything, callerID, accountID).Return([]service.SummaryRow{}, nil)

	resp := newTestAPI(t, mockSvc).Get("/api/v1/summary/monthly/" + accountID.String())

	assert.Equal(t, http.StatusOK, resp.Code)
	var body SummaryResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Empty(t, body.Data)
	mockSvc.AssertNotCalled(t, "Daily", mock.Anything, mock.Anything, mock.Anything)
}

func TestHTTP_Summary_ForeignAccount(t *testing.T) {
	accountID := uuid.Must(uuid.NewV4())
	mockSvc := new(mockSummaryService)
	mockSvc.On("Monthly", mock.Anything, callerID, accountID).Return(nil, apperror.NotFound("Account not found"))

	resp := newTestAPI(t, mockSvc).Get("/api/v1/summary/monthly/" + accountID.String())

	assert.Equal(t, http.StatusNotFound, resp.Code)
}

package service

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/apperror"
	"github.com/carson-networks/ledger-server/internal/operator/actions"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
)

// SummaryRow totals one calendar bucket of an account's live transactions.
type SummaryRow struct {
	Period      string
	TotalAmount int64
	Count       int64
	Average     decimal.Decimal
}

// SummaryService rolls up an account's live transactions by day or by month.
type SummaryService struct {
	reader *storage.Reader
}

func NewSummaryService(reader *storage.Reader) *SummaryService {
	return &SummaryService{reader: reader}
}

func (s *SummaryService) Daily(ctx context.Context, userID, accountID uuid.UUID) ([]SummaryRow, error) {
	return s.summarize(ctx, userID, accountID, transaction.PeriodDay)
}

func (s *SummaryService) Monthly(ctx context.Context, userID, accountID uuid.UUID) ([]SummaryRow, error) {
	return s.summarize(ctx, userID, accountID, transaction.PeriodMonth)
}

func (s *SummaryService) summarize(ctx context.Context, userID, accountID uuid.UUID, period transaction.Period) ([]SummaryRow, error) {
	acct, err := s.reader.Accounts.FindByID(ctx, userID, accountID)
	if err != nil {
		return nil, fmt.Errorf("find account: %w", err)
	}
	if acct == nil {
		return nil, apperror.NotFound(actions.MessageAccountNotFound)
	}

	totals, err := s.reader.Transactions.Summarize(ctx, accountID, period)
	if err != nil {
		return nil, fmt.Errorf("summarize: %w", err)
	}

	rows := make([]SummaryRow, len(totals))
	for i, total := range totals {
		average := decimal.Zero
		if total.Count > 0 {
			average = decimal.NewFromInt(total.TotalAmount).
				DivRound(decimal.NewFromInt(total.Count), 2)
		}
		rows[i] = SummaryRow{
			Period:      total.Period,
			TotalAmount: total.TotalAmount,
			Count:       total.Count,
			Average:     average,
		}
	}
	return rows, nil
}

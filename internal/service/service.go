package service

import (
	"context"

	"github.com/carson-networks/ledger-server/internal/access"
	"github.com/carson-networks/ledger-server/internal/operator/actions"
	"github.com/carson-networks/ledger-server/internal/storage"
)

// processor runs actions as units of work. *operator.OperatorDelegator satisfies it.
type processor interface {
	Process(ctx context.Context, action actions.IAction) error
	Dispatch(action actions.IAction) <-chan error
}

// Service holds all business logic services.
type Service struct {
	Auth        *AuthService
	User        *UserService
	Account     *AccountService
	Transaction *TransactionService
	Summary     *SummaryService
}

// NewService wires every service to the same reader and operator.
func NewService(reader *storage.Reader, ops processor, tokens *access.TokenIssuer, hasher *access.PasswordHasher) *Service {
	return &Service{
		Auth:        NewAuthService(reader, ops, tokens, hasher),
		User:        NewUserService(reader, ops, hasher),
		Account:     NewAccountService(reader, ops),
		Transaction: NewTransactionService(reader, ops),
		Summary:     NewSummaryService(reader),
	}
}

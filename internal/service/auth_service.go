package service

import (
	"context"
	"fmt"
	"time"

	"github.com/carson-networks/ledger-server/internal/access"
	"github.com/carson-networks/ledger-server/internal/apperror"
	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/operator/actions"
	"github.com/carson-networks/ledger-server/internal/storage"
)

const MessageWrongCredentials = "Wrong username or password"

// AuthService registers users and exchanges credentials for tokens.
type AuthService struct {
	reader *storage.Reader
	ops    processor
	tokens *access.TokenIssuer
	hasher *access.PasswordHasher
	now    func() time.Time
}

func NewAuthService(reader *storage.Reader, ops processor, tokens *access.TokenIssuer, hasher *access.PasswordHasher) *AuthService {
	return &AuthService{
		reader: reader,
		ops:    ops,
		tokens: tokens,
		hasher: hasher,
		now:    time.Now,
	}
}

// Register creates the user and returns a signed token for it.
func (s *AuthService) Register(ctx context.Context, registration Registration) (string, error) {
	var fields apperror.Fields
	if len(registration.Password) < minPasswordLength {
		fields.Add("password", fmt.Sprintf("password length must be at least %d characters long", minPasswordLength))
	}
	if err := fields.Err(""); err != nil {
		return "", err
	}

	hashed, err := s.hasher.Hash(registration.Password)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	action := &actions.RegisterUser{
		Username:     registration.Username,
		Name:         registration.Name,
		PasswordHash: hashed,
		At:           s.now(),
	}
	if err = s.ops.Process(ctx, action); err != nil {
		return "", err
	}

	return s.tokens.Issue(action.Created.ID, action.Created.Username)
}

// Login verifies the credentials of a live user, refreshes its last login and returns
// a signed token.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	var fields apperror.Fields
	if username == "" {
		fields.Add("username", "username is required")
	}
	if len(password) < minPasswordLength {
		fields.Add("password", fmt.Sprintf("password length must be at least %d characters long", minPasswordLength))
	}
	if err := fields.Err(""); err != nil {
		return "", err
	}

	row, err := s.reader.Users.FindByUsername(ctx, username, false)
	if err != nil {
		return "", fmt.Errorf("find user: %w", err)
	}
	if row == nil {
		return "", apperror.Validation(MessageWrongCredentials)
	}

	matches, err := s.hasher.Matches(row.Password, password)
	if err != nil {
		return "", fmt.Errorf("compare password: %w", err)
	}
	if !matches {
		return "", apperror.Validation(MessageWrongCredentials)
	}

	// The refresh is best effort and never fails the login.
	done := s.ops.Dispatch(&actions.TouchLastLogin{UserID: row.ID, At: s.now()})
	if logData := logging.GetLogData(ctx); logData != nil {
		go func() {
			if err := <-done; err != nil {
				logData.Log().WithError(err).Warn("AuthService.Login.touchLastLogin")
			}
		}()
	}

	return s.tokens.Issue(row.ID, row.Username)
}

package service

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/access"
	"github.com/carson-networks/ledger-server/internal/apperror"
	"github.com/carson-networks/ledger-server/internal/operator/actions"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/user"
)

// UserService handles the caller's own profile.
type UserService struct {
	reader *storage.Reader
	ops    processor
	hasher *access.PasswordHasher
}

func NewUserService(reader *storage.Reader, ops processor, hasher *access.PasswordHasher) *UserService {
	return &UserService{
		reader: reader,
		ops:    ops,
		hasher: hasher,
	}
}

func (s *UserService) Profile(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	row, err := s.reader.Users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if row == nil {
		return nil, apperror.NotFound(actions.MessageUserNotFound)
	}
	return profileFromStorage(row), nil
}

// Edit applies the present fields of edit. A new password is hashed before storage.
func (s *UserService) Edit(ctx context.Context, userID uuid.UUID, edit ProfileEdit) (*Profile, error) {
	patch := user.UserPatch{
		Username: edit.Username,
		Name:     edit.Name,
	}

	if password, ok := edit.Password.Get(); ok {
		if len(password) < minPasswordLength {
			return nil, apperror.Validation("password is too short", apperror.FieldError{
				Field:   "password",
				Message: fmt.Sprintf("password length must be at least %d characters long", minPasswordLength),
			})
		}
		hashed, err := s.hasher.Hash(password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		patch.Password.Set(hashed)
	}

	action := &actions.EditUser{UserID: userID, Patch: patch}
	if err := s.ops.Process(ctx, action); err != nil {
		return nil, err
	}
	return profileFromStorage(action.Updated), nil
}

func (s *UserService) Delete(ctx context.Context, userID uuid.UUID) error {
	return s.ops.Process(ctx, &actions.DeleteUser{UserID: userID})
}

// Restore clears the tombstone of id, which must be the caller.
func (s *UserService) Restore(ctx context.Context, callerID, id uuid.UUID) error {
	return s.ops.Process(ctx, &actions.RestoreUser{CallerID: callerID, UserID: id})
}

package actions

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/apperror"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/pgerr"
	"github.com/carson-networks/ledger-server/internal/storage/user"
)

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// RegisterUser creates a user. Password must already be hashed.
type RegisterUser struct {
	Username     string
	Name         string
	PasswordHash string
	At           time.Time

	Created *user.User
}

func (r *RegisterUser) Validate() error {
	var fields apperror.Fields
	if isBlank(r.Name) {
		fields.Add("name", "name is required")
	}
	if isBlank(r.Username) {
		fields.Add("username", "username is required")
	}
	if r.PasswordHash == "" {
		fields.Add("password", "password is required")
	}
	return fields.Err("")
}

func (r *RegisterUser) Perform(ctx context.Context, writer *storage.Writer) error {
	existing, err := writer.Users.FindByUsername(ctx, r.Username, true)
	if err != nil {
		return fmt.Errorf("find username: %w", err)
	}
	if existing != nil {
		return apperror.Conflict(MessageUsernameTaken, nil)
	}

	created, err := writer.Users.Insert(ctx, &user.UserCreate{
		Username:  r.Username,
		Name:      r.Name,
		Password:  r.PasswordHash,
		LastLogin: r.At,
	})
	if pgerr.IsUniqueViolation(err) {
		return apperror.Conflict(MessageUsernameTaken, err)
	}
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}

	r.Created = created
	return nil
}

// EditUser merges Patch into the caller's profile. A password in Patch must already be
// hashed.
type EditUser struct {
	UserID uuid.UUID
	Patch  user.UserPatch

	Updated *user.User
}

func (e *EditUser) Validate() error {
	var fields apperror.Fields
	if v, ok := e.Patch.Username.Get(); ok && isBlank(v) {
		fields.Add("username", "username is not allowed to be empty")
	}
	if v, ok := e.Patch.Name.Get(); ok && isBlank(v) {
		fields.Add("name", "name is not allowed to be empty")
	}
	return fields.Err("")
}

func (e *EditUser) Perform(ctx context.Context, writer *storage.Writer) error {
	current, err := writer.Users.FindByIDForUpdate(ctx, e.UserID)
	if err != nil {
		return fmt.Errorf("lock user: %w", err)
	}
	if current == nil || current.IsDeleted() {
		return apperror.NotFound(MessageUserNotFound)
	}

	if username, ok := e.Patch.Username.Get(); ok && username != current.Username {
		existing, err := writer.Users.FindByUsername(ctx, username, true)
		if err != nil {
			return fmt.Errorf("find username: %w", err)
		}
		if existing != nil {
			return apperror.Conflict(MessageUsernameTaken, nil)
		}
	}

	updated, err := writer.Users.Update(ctx, current.ID, &e.Patch)
	if pgerr.IsUniqueViolation(err) {
		return apperror.Conflict(MessageUsernameTaken, err)
	}
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if updated == nil {
		return apperror.NotFound(MessageUserNotFound)
	}

	e.Updated = updated
	return nil
}

type DeleteUser struct {
	UserID uuid.UUID
}

func (d *DeleteUser) Perform(ctx context.Context, writer *storage.Writer) error {
	current, err := writer.Users.FindByIDForUpdate(ctx, d.UserID)
	if err != nil {
		return fmt.Errorf("lock user: %w", err)
	}
	if current == nil {
		return apperror.NotFound(MessageUserNotFound)
	}
	if current.IsDeleted() {
		return nil
	}

	if err = writer.Users.SoftDelete(ctx, current.ID); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

// RestoreUser clears the caller's own tombstone. Any other id is reported as not found.
type RestoreUser struct {
	CallerID uuid.UUID
	UserID   uuid.UUID
}

func (r *RestoreUser) Perform(ctx context.Context, writer *storage.Writer) error {
	if r.CallerID != r.UserID {
		return apperror.NotFound(MessageUserNotFound)
	}

	current, err := writer.Users.FindByIDForUpdate(ctx, r.UserID)
	if err != nil {
		return fmt.Errorf("lock user: %w", err)
	}
	if current == nil {
		return apperror.NotFound(MessageUserNotFound)
	}
	if !current.IsDeleted() {
		return nil
	}

	if err = writer.Users.Restore(ctx, current.ID); err != nil {
		return fmt.Errorf("restore user: %w", err)
	}
	return nil
}

// lockLiveUser locks the caller's row. A user who closed their profile keeps a valid
// token until it expires but can no longer change any ledger data.
func lockLiveUser(ctx context.Context, writer *storage.Writer, userID uuid.UUID) error {
	current, err := writer.Users.FindByIDForUpdate(ctx, userID)
	if err != nil {
		return fmt.Errorf("lock user: %w", err)
	}
	if current == nil || current.IsDeleted() {
		return apperror.NotFound(MessageUserNotFound)
	}
	return nil
}

type TouchLastLogin struct {
	UserID uuid.UUID
	At     time.Time
}

func (t *TouchLastLogin) Perform(ctx context.Context, writer *storage.Writer) error {
	if err := writer.Users.TouchLastLogin(ctx, t.UserID, t.At); err != nil {
		return fmt.Errorf("touch last login: %w", err)
	}
	return nil
}

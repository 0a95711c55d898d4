package service

import (
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/storage/user"
)

const minPasswordLength = 6

// Profile is a user as shown to its owner. It never carries the password hash.
type Profile struct {
	ID        uuid.UUID
	Username  string
	Name      string
	LastLogin *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Registration is the input for creating a user.
type Registration struct {
	Name     string
	Username string
	Password string
}

// ProfileEdit lists the profile fields an edit may change. Password is plain text.
type ProfileEdit struct {
	Username omit.Val[string]
	Name     omit.Val[string]
	Password omit.Val[string]
}

func profileFromStorage(row *user.User) *Profile {
	return &Profile{
		ID:        row.ID,
		Username:  row.Username,
		Name:      row.Name,
		LastLogin: row.LastLogin,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

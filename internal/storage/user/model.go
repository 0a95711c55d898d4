package user

import (
	"context"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"
)

const TableName = "users"

var userColumns = []any{
	"id", "username", "name", "password", "last_login", "created_at", "updated_at", "deleted_at",
}

// User represents a user record. Password holds the bcrypt hash.
type User struct {
	ID        uuid.UUID  `db:"id"`
	Username  string     `db:"username"`
	Name      string     `db:"name"`
	Password  string     `db:"password"`
	LastLogin *time.Time `db:"last_login"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

func (u *User) IsDeleted() bool {
	return u.DeletedAt != nil
}

// UserCreate is the input for creating a new user.
type UserCreate struct {
	Username  string
	Name      string
	Password  string
	LastLogin time.Time
}

// UserPatch lists the user fields an edit may change. Unset fields are left untouched.
type UserPatch struct {
	Username omit.Val[string]
	Name     omit.Val[string]
	Password omit.Val[string]
}

func (p *UserPatch) IsEmpty() bool {
	return p.Username.IsUnset() && p.Name.IsUnset() && p.Password.IsUnset()
}

// IUserReader defines the read-only user storage operations.
type IUserReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByUsername(ctx context.Context, username string, includeDeleted bool) (*User, error)
}

// IUserWriter defines the user storage operations available inside a unit of work.
type IUserWriter interface {
	IUserReader
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*User, error)
	Insert(ctx context.Context, create *UserCreate) (*User, error)
	Update(ctx context.Context, id uuid.UUID, patch *UserPatch) (*User, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Restore(ctx context.Context, id uuid.UUID) error
	TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

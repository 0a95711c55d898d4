package access

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/apperror"
)

type identityKey struct{}

// Identity is the authenticated caller.
type Identity struct {
	UserID   uuid.UUID
	Username string
}

func WithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// IdentityFrom returns the caller attached by the gate.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(Identity)
	return identity, ok
}

// CallerID returns the authenticated caller's user id, or an auth error when the
// request did not pass the gate.
func CallerID(ctx context.Context) (uuid.UUID, error) {
	identity, ok := IdentityFrom(ctx)
	if !ok {
		return uuid.Nil, apperror.Auth(MessageInvalidToken, nil)
	}
	return identity.UserID, nil
}

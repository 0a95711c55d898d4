package user

import (
	"context"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/access"
	"github.com/carson-networks/ledger-server/internal/handlers/v1/response"
	"github.com/carson-networks/ledger-server/internal/service"
)

var bearer = []map[string][]string{{access.SecurityScheme: {}}}

// profileManager is the interface for the caller's own profile.
type profileManager interface {
	Profile(ctx context.Context, userID uuid.UUID) (*service.Profile, error)
	Edit(ctx context.Context, userID uuid.UUID, edit service.ProfileEdit) (*service.Profile, error)
	Delete(ctx context.Context, userID uuid.UUID) error
	Restore(ctx context.Context, callerID, id uuid.UUID) error
}

// Handler serves the /api/v1/user operations.
type Handler struct {
	UserService profileManager
}

func NewHandler(svc profileManager) *Handler {
	return &Handler{UserService: svc}
}

func (h *Handler) Register(api huma.API) {
	h.registerProfile(api)
	h.registerEdit(api)
	h.registerDelete(api)
	h.registerRestore(api)
}

// Profile is the API response model for a user. The password hash is never included.
type Profile struct {
	ID        string     `json:"id" doc:"User UUID"`
	Username  string     `json:"username"`
	Name      string     `json:"name"`
	LastLogin *time.Time `json:"lastLogin" doc:"Last successful authentication"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

func profileFromService(p *service.Profile) Profile {
	return Profile{
		ID:        p.ID.String(),
		Username:  p.Username,
		Name:      p.Name,
		LastLogin: p.LastLogin,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// ProfileResponse is the response body of the profile read and edit.
type ProfileResponse struct {
	response.Envelope
	Data Profile `json:"data"`
}

// ProfileOutput is the Huma output of the profile read and edit.
type ProfileOutput struct {
	Body ProfileResponse
}

// MessageOutput is the Huma output of operations that only report success.
type MessageOutput struct {
	Body response.Envelope
}

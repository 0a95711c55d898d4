package user

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/access"
	"github.com/carson-networks/ledger-server/internal/handlers/v1/response"
)

func (h *Handler) registerProfile(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-profile",
		Method:      http.MethodGet,
		Path:        "/api/v1/user/profile",
		Summary:     "Get profile",
		Tags:        []string{"User"},
		Security:    bearer,
	}, h.handleProfile)
}

func (h *Handler) handleProfile(ctx context.Context, _ *struct{}) (*ProfileOutput, error) {
	userID, err := access.CallerID(ctx)
	if err != nil {
		return nil, response.Error(ctx, err)
	}

	profile, err := h.UserService.Profile(ctx, userID)
	if err != nil {
		return nil, response.Error(ctx, err)
	}

	return &ProfileOutput{Body: ProfileResponse{
		Envelope: response.Success("Profile retrieved successfully"),
		Data:     profileFromService(profile),
	}}, nil
}

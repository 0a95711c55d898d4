package user

import (
	"context"
	"net/http"

	"github.com/aarondl/opt/omit"
	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/access"
	"github.com/carson-networks/ledger-server/internal/handlers/v1/response"
	"github.com/carson-networks/ledger-server/internal/service"
)

// EditBody is the request body for editing the profile. Absent fields are kept.
type EditBody struct {
	Username *string `json:"username,omitempty" doc:"New login name"`
	Name     *string `json:"name,omitempty" doc:"New display name"`
	Password *string `json:"password,omitempty" doc:"New password, at least 6 characters"`
}

// EditInput is the Huma input for editing the profile.
type EditInput struct {
	Body EditBody
}

func (h *Handler) registerEdit(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "edit-profile",
		Method:      http.MethodPut,
		Path:        "/api/v1/user/edit",
		Summary:     "Edit profile",
		Tags:        []string{"User"},
		Security:    bearer,
	}, h.handleEdit)
}

func optional[T any](v *T) omit.Val[T] {
	if v == nil {
		return omit.Val[T]{}
	}
	return omit.From(*v)
}

func (h *Handler) handleEdit(ctx context.Context, input *EditInput) (*ProfileOutput, error) {
	userID, err := access.CallerID(ctx)
	if err != nil {
		return nil, response.Error(ctx, err)
	}

	profile, err := h.UserService.Edit(ctx, userID, service.ProfileEdit{
		Username: optional(input.Body.Username),
		Name:     optional(input.Body.Name),
		Password: optional(input.Body.Password),
	})
	if err != nil {
		return nil, response.Error(ctx, err)
	}

	return &ProfileOutput{Body: ProfileResponse{
		Envelope: response.Success("Profile updated successfully"),
		Data:     profileFromService(profile),
	}}, nil
}

package user

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/access"
	"github.com/carson-networks/ledger-server/internal/handlers/v1/response"
)

// RestoreInput is the Huma input for restoring a user.
type RestoreInput struct {
	ID string `path:"id" format:"uuid" doc:"User UUID, must be the caller"`
}

func (h *Handler) registerRestore(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "restore-user",
		Method:      http.MethodPut,
		Path:        "/api/v1/user/restore/{id}",
		Summary:     "Restore the caller's user",
		Tags:        []string{"User"},
		Security:    bearer,
	}, h.handleRestore)
}

func (h *Handler) handleRestore(ctx context.Context, input *RestoreInput) (*MessageOutput, error) {
	callerID, err := access.CallerID(ctx)
	if err != nil {
		return nil, response.Error(ctx, err)
	}

	id, err := uuid.FromString(input.ID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid id", err)
	}

	if err = h.UserService.Restore(ctx, callerID, id); err != nil {
		return nil, response.Error(ctx, err)
	}

	return &MessageOutput{Body: response.Success("Restored successfully")}, nil
}

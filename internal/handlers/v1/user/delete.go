package user

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/access"
	"github.com/carson-networks/ledger-server/internal/handlers/v1/response"
)

func (h *Handler) registerDelete(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "delete-user",
		Method:      http.MethodDelete,
		Path:        "/api/v1/user/delete",
		Summary:     "Close the caller's user",
		Tags:        []string{"User"},
		Security:    bearer,
	}, h.handleDelete)
}

func (h *Handler) handleDelete(ctx context.Context, _ *struct{}) (*MessageOutput, error) {
	userID, err := access.CallerID(ctx)
	if err != nil {
		return nil, response.Error(ctx, err)
	}

	if err = h.UserService.Delete(ctx, userID); err != nil {
		return nil, response.Error(ctx, err)
	}

	return &MessageOutput{Body: response.Success("Deleted successfully")}, nil
}

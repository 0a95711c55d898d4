package auth

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/handlers/v1/response"
	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/service"
)

// RegisterBody is the request body for creating a user.
type RegisterBody struct {
	Name     string `json:"name" minLength:"1" doc:"Display name"`
	Username string `json:"username" minLength:"1" doc:"Unique login name"`
	Password string `json:"password" doc:"At least 6 characters"`
}

// RegisterInput is the Huma input for creating a user.
type RegisterInput struct {
	Body RegisterBody
}

func (h *Handler) registerRegister(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "register",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/register",
		Summary:     "Register",
		Description: "Creates a user and returns a bearer token for it.",
		Tags:        []string{"Auth"},
	}, h.handleRegister)
}

func (h *Handler) handleRegister(ctx context.Context, input *RegisterInput) (*TokenOutput, error) {
	logData := logging.GetLogData(ctx)
	if logData != nil {
		logData.AddData("username", input.Body.Username)
	}

	token, err := h.AuthService.Register(ctx, service.Registration{
		Name:     input.Body.Name,
		Username: input.Body.Username,
		Password: input.Body.Password,
	})
	if err != nil {
		return nil, response.Error(ctx, err)
	}

	return &TokenOutput{Body: TokenResponse{
		Envelope: response.Success("Registered in successfully"),
		Data:     TokenData{Token: token},
	}}, nil
}

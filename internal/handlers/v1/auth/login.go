package auth

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/handlers/v1/response"
	"github.com/carson-networks/ledger-server/internal/logging"
)

// LoginBody is the request body for logging in.
type LoginBody struct {
	Username string `json:"username" minLength:"1" doc:"Login name"`
	Password string `json:"password" doc:"Password"`
}

// LoginInput is the Huma input for logging in. The credentials travel in a GET body.
type LoginInput struct {
	Body LoginBody
}

func (h *Handler) registerLogin(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "login",
		Method:      http.MethodGet,
		Path:        "/api/v1/auth/login",
		Summary:     "Login",
		Description: "Verifies the credentials, refreshes the last login and returns a bearer token.",
		Tags:        []string{"Auth"},
	}, h.handleLogin)
}

func (h *Handler) handleLogin(ctx context.Context, input *LoginInput) (*TokenOutput, error) {
	logData := logging.GetLogData(ctx)
	if logData != nil {
		logData.AddData("username", input.Body.Username)
	}

	token, err := h.AuthService.Login(ctx, input.Body.Username, input.Body.Password)
	if err != nil {
		return nil, response.Error(ctx, err)
	}

	return &TokenOutput{Body: TokenResponse{
		Envelope: response.Success("Logged in successfully"),
		Data:     TokenData{Token: token},
	}}, nil
}

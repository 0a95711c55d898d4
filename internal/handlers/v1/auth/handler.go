package auth

import (
	"context"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/handlers/v1/response"
	"github.com/carson-networks/ledger-server/internal/service"
)

// authenticator is the interface for exchanging credentials for tokens.
type authenticator interface {
	Register(ctx context.Context, registration service.Registration) (string, error)
	Login(ctx context.Context, username, password string) (string, error)
}

// Handler serves the unauthenticated /api/v1/auth operations.
type Handler struct {
	AuthService authenticator
}

func NewHandler(svc authenticator) *Handler {
	return &Handler{AuthService: svc}
}

func (h *Handler) Register(api huma.API) {
	h.registerRegister(api)
	h.registerLogin(api)
}

// TokenData carries a signed bearer token.
type TokenData struct {
	Token string `json:"token" doc:"Signed bearer token"`
}

// TokenResponse is the response body of register and login.
type TokenResponse struct {
	response.Envelope
	Data TokenData `json:"data"`
}

// TokenOutput is the Huma output of register and login.
type TokenOutput struct {
	Body TokenResponse
}

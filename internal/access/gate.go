package access

import (
	"net/http"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/operator/actions"
)

// SecurityScheme is the name operations list in huma.Operation.Security to require a
// bearer token.
const SecurityScheme = "bearer"

const (
	MessageNoToken      = "No token! Authorization denied"
	MessageInvalidToken = "Invalid Token"
)

type dispatcher interface {
	Dispatch(action actions.IAction) <-chan error
}

// Gate authenticates operations that declare the bearer security requirement.
type Gate struct {
	tokens        *TokenIssuer
	dispatcher    dispatcher
	lastLoginWait time.Duration
	log           *logrus.Logger
	now           func() time.Time
}

func NewGate(tokens *TokenIssuer, d dispatcher, lastLoginWait time.Duration, log *logrus.Logger) *Gate {
	return &Gate{
		tokens:        tokens,
		dispatcher:    d,
		lastLoginWait: lastLoginWait,
		log:           log,
		now:           time.Now,
	}
}

// Middleware rejects unauthenticated calls and attaches the caller's Identity to the
// rest. Every authenticated call refreshes the caller's last login.
func (g *Gate) Middleware(api huma.API) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		if !requiresBearer(ctx.Operation()) {
			next(ctx)
			return
		}

		header := ctx.Header("Authorization")
		if header == "" {
			_ = huma.WriteErr(api, ctx, http.StatusBadRequest, MessageNoToken)
			return
		}

		identity, err := g.tokens.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			if logData := logging.GetLogData(ctx.Context()); logData != nil {
				logData.AddData("authError", err.Error())
			}
			_ = huma.WriteErr(api, ctx, http.StatusUnauthorized, MessageInvalidToken)
			return
		}

		g.touchLastLogin(identity)

		next(huma.WithValue(ctx, identityKey{}, identity))
	}
}

// touchLastLogin dispatches the refresh and waits for it at most lastLoginWait. The
// outcome never affects the request.
func (g *Gate) touchLastLogin(identity Identity) {
	done := g.dispatcher.Dispatch(&actions.TouchLastLogin{
		UserID: identity.UserID,
		At:     g.now(),
	})

	timer := time.NewTimer(g.lastLoginWait)
	defer timer.Stop()

	select {
	case err := <-done:
		if err != nil {
			g.log.WithError(err).WithField("userID", identity.UserID.String()).Warn("Gate.touchLastLogin.Error")
		}
	case <-timer.C:
	}
}

func requiresBearer(op *huma.Operation) bool {
	if op == nil {
		return false
	}
	for _, requirement := range op.Security {
		if _, ok := requirement[SecurityScheme]; ok {
			return true
		}
	}
	return false
}

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humamux"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/ledger-server/internal/access"
	"github.com/carson-networks/ledger-server/internal/handlers/v1/account"
	"github.com/carson-networks/ledger-server/internal/handlers/v1/auth"
	"github.com/carson-networks/ledger-server/internal/handlers/v1/status"
	"github.com/carson-networks/ledger-server/internal/handlers/v1/summary"
	"github.com/carson-networks/ledger-server/internal/handlers/v1/transaction"
	"github.com/carson-networks/ledger-server/internal/handlers/v1/user"
	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/service"
	"github.com/carson-networks/ledger-server/internal/storage"
)

const shutdownTimeout = 15 * time.Second

type Rest struct {
	Logger  *logrus.Logger
	Port    string
	Service *service.Service
	Gate    *access.Gate
	Storage *storage.Storage
}

// NewAPI registers every /api/v1 operation on router. Operations that declare the
// bearer scheme go through gate.
func NewAPI(router *mux.Router, log *logrus.Logger, gate *access.Gate, svc *service.Service) huma.API {
	config := huma.DefaultConfig("ledger-server", "1.0.0")
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		access.SecurityScheme: {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "JWT",
		},
	}

	api := humamux.New(router, config)
	api.UseMiddleware(logging.Middleware(log))
	api.UseMiddleware(gate.Middleware(api))

	auth.NewHandler(svc.Auth).Register(api)
	user.NewHandler(svc.User).Register(api)
	account.NewHandler(svc.Account).Register(api)
	transaction.NewHandler(svc.Transaction).Register(api)
	summary.NewHandler(svc.Summary).Register(api)

	return api
}

// Serve blocks until ctx is cancelled or the listener fails, then drains in-flight
// requests.
func (r *Rest) Serve(ctx context.Context) error {
	router := mux.NewRouter()

	statusHandler := status.NewHandler(r.Storage)
	router.HandleFunc("/status", logging.LoggingWrapper("Status", r.Logger, statusHandler.Handler))

	NewAPI(router, r.Logger, r.Gate, r.Service)

	server := http.Server{
		Addr:              ":" + r.Port,
		Handler:           router,
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(30) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	listenErr := make(chan error, 1)
	go func() {
		r.Logger.WithField("port", r.Port).Info("HttpServer.Serve.listening")
		listenErr <- server.ListenAndServe()
	}()

	select {
	case err := <-listenErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
		return err
	case <-ctx.Done():
	}

	r.Logger.Info("HttpServer.Serve.shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

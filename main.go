package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/carson-networks/ledger-server/api"
	"github.com/carson-networks/ledger-server/internal/access"
	"github.com/carson-networks/ledger-server/internal/config"
	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/operator"
	"github.com/carson-networks/ledger-server/internal/service"
	"github.com/carson-networks/ledger-server/internal/storage"
)

func main() {
	logger := logging.SetupLogging()
	logrus.Info("ledger-server starting")

	envConfig, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("config.ProcessEnvironmentVariables")
		return
	}
	if err = logging.ApplyLevel(logger, envConfig.LogLevel); err != nil {
		logrus.WithError(err).Fatal("logging.ApplyLevel")
		return
	}

	dbStorage, err := storage.NewStorage(envConfig)
	if err != nil {
		logrus.WithError(err).Fatal("storage.NewStorage")
		return
	}
	defer func() {
		if closeErr := dbStorage.Close(); closeErr != nil {
			logrus.WithError(closeErr).Error("storage.Close")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = dbStorage.Ping(ctx); err != nil {
		logrus.WithError(err).Warn("storage.Ping")
	}

	delegator := operator.NewOperatorDelegator(dbStorage, envConfig.OperatorWorkers, logger)
	delegator.Start()
	defer delegator.Stop()

	tokens := access.NewTokenIssuer(envConfig.JWTSecret, envConfig.TokenTTL())
	hasher := access.NewPasswordHasher(envConfig.BcryptCost)
	svc := service.NewService(dbStorage.Read(), delegator, tokens, hasher)
	gate := access.NewGate(tokens, delegator, envConfig.LastLoginWait(), logger)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		httpRest := api.Rest{
			Logger:  logger,
			Port:    envConfig.HTTPPort,
			Service: svc,
			Gate:    gate,
			Storage: dbStorage,
		}
		return httpRest.Serve(groupCtx)
	})

	if err = group.Wait(); err != nil {
		logrus.WithError(err).Error("ledger-server stopped")
		return
	}
	logrus.Info("ledger-server stopped")
}

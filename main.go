package main

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/expense-sync/api"
	"github.com/carson-networks/expense-sync/internal/config"
	"github.com/carson-networks/expense-sync/internal/logging"
	"github.com/carson-networks/expense-sync/internal/remote"
	"github.com/carson-networks/expense-sync/internal/service"
	"github.com/carson-networks/expense-sync/internal/session"
	"github.com/carson-networks/expense-sync/internal/storage"
	syncengine "github.com/carson-networks/expense-sync/internal/sync"
)

func main() {
	envConfig, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("config.ProcessEnvironmentVariables")
		return
	}

	logger := logging.SetupLogging(envConfig.LogLevel)
	logger.Info("expense-sync starting")

	store, err := storage.Open(envConfig.SQLitePath)
	if err != nil {
		logger.WithError(err).Fatal("storage.Open")
		return
	}
	defer store.Close()

	if err := store.Migrate(); err != nil {
		logger.WithError(err).Fatal("storage.Migrate")
		return
	}

	connectCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	client, err := remote.Connect(connectCtx, envConfig.MongoURI)
	cancel()
	if err != nil {
		logger.WithError(err).Fatal("remote.Connect")
		return
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.WithError(err).Error("remote.Disconnect")
		}
	}()

	remoteStore := remote.NewMongoStore(client, envConfig.MongoDatabase)

	dispatcher := remote.NewDispatcher(remoteStore, logger, envConfig.SyncWorkers)
	dispatcher.Start()
	defer dispatcher.Stop()

	engine := syncengine.NewEngine(store.Expenses, remoteStore, dispatcher, logger)
	svc := service.NewService(store, engine, remoteStore, dispatcher, logger)
	sess := &session.Static{UserID: envConfig.UserEmail}

	startupSync(logger, svc, sess)

	wg := sync.WaitGroup{}
	wg.Add(1)

	go func() {
		httpRest := api.Rest{
			Logger:  logger,
			Port:    envConfig.HTTPPort,
			Service: svc,
			Session: sess,
		}
		httpRest.Serve()
	}()

	wg.Wait()
}

// startupSync reconciles local state with the remote store for a
// signed-in user. Failures are logged and the server starts anyway;
// local data stays usable offline.
func startupSync(logger *logrus.Logger, svc *service.Service, sess *session.Static) {
	userID := sess.CurrentUser()
	if userID == "" {
		logger.Info("Startup.Sync.skipped no signed-in user")
		return
	}

	ctx := context.Background()

	stats, err := svc.Expense.Sync(ctx, userID)
	if err != nil {
		logger.WithError(err).Error("Startup.Sync.expenses failed")
	} else {
		logger.WithFields(logrus.Fields{
			"fetched":  stats.Fetched,
			"inserted": stats.Inserted,
		}).Info("Startup.Sync.expenses complete")
	}

	if err := svc.Budget.PullBudget(ctx, userID); err != nil {
		logger.WithError(err).Error("Startup.Sync.budget failed")
	}
}

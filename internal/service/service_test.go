package service

import (
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/expense-sync/internal/expense"
	"github.com/carson-networks/expense-sync/internal/remote"
	"github.com/carson-networks/expense-sync/internal/storage"
	syncengine "github.com/carson-networks/expense-sync/internal/sync"
)

const testUser = "a@b.com"

type testEnv struct {
	service    *Service
	store      *storage.Storage
	remote     *remote.MemoryStore
	dispatcher *remote.Dispatcher
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store, err := storage.Open(filepath.Join(t.TempDir(), "expenses.db"))
	require.NoError(t, err)
	require.NoError(t, store.Migrate())
	t.Cleanup(func() { _ = store.Close() })

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	remoteStore := remote.NewMemoryStore()
	dispatcher := remote.NewDispatcher(remoteStore, logger, 1)
	dispatcher.Start()
	t.Cleanup(dispatcher.Stop)

	engine := syncengine.NewEngine(store.Expenses, remoteStore, dispatcher, logger)
	return &testEnv{
		service:    NewService(store, engine, remoteStore, dispatcher, logger),
		store:      store,
		remote:     remoteStore,
		dispatcher: dispatcher,
	}
}

func record(title string, amount float64, date, category string) *expense.Expense {
	return &expense.Expense{Title: title, Amount: amount, Date: date, Category: category}
}

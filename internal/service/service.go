package service

import (
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/expense-sync/internal/remote"
	"github.com/carson-networks/expense-sync/internal/storage"
	syncengine "github.com/carson-networks/expense-sync/internal/sync"
)

// Service bundles the application services behind one handle for the
// handlers.
type Service struct {
	Expense *ExpenseService
	Budget  *BudgetService
	Summary *SummaryService
}

// NewService creates a new Service.
func NewService(
	store *storage.Storage,
	engine *syncengine.Engine,
	remoteStore remote.Store,
	dispatcher *remote.Dispatcher,
	logger *logrus.Logger,
) *Service {
	budget := NewBudgetService(store.Prefs, remoteStore, dispatcher, logger)
	return &Service{
		Expense: NewExpenseService(store.Expenses, engine, logger),
		Budget:  budget,
		Summary: NewSummaryService(store.Expenses, budget),
	}
}

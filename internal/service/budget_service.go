package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/carson-networks/expense-sync/internal/identity"
	"github.com/carson-networks/expense-sync/internal/remote"
	"github.com/carson-networks/expense-sync/internal/storage"
)

// DefaultMonthlyBudget applies when a user has never set a budget.
const DefaultMonthlyBudget = 1000

// BudgetService keeps the per-user monthly budget preference and its
// one-directional pull from the remote profile document.
type BudgetService struct {
	prefs      storage.IPreferenceTable
	remote     remote.Store
	dispatcher *remote.Dispatcher
	logger     *logrus.Logger
}

// NewBudgetService creates a new BudgetService.
func NewBudgetService(prefs storage.IPreferenceTable, store remote.Store, dispatcher *remote.Dispatcher, logger *logrus.Logger) *BudgetService {
	return &BudgetService{prefs: prefs, remote: store, dispatcher: dispatcher, logger: logger}
}

// PullBudget fetches the user's remote budget profile document and
// overwrites the local preference with its monthly_budget value. A
// missing document, missing field or remote failure leaves the local
// value untouched: silent no-op, nothing surfaced. Only a local store
// failure is an error.
func (s *BudgetService) PullBudget(ctx context.Context, userID string) error {
	if userID == "" {
		return nil
	}

	doc, err := s.remote.Get(ctx, identity.BudgetKey(userID))
	if err != nil {
		s.logger.WithError(err).WithField("userID", userID).Error("BudgetService.PullBudget.remote fetch failed")
		return nil
	}
	if doc == nil {
		return nil
	}

	value, ok := remote.Number(doc[remote.FieldMonthlyBudget])
	if !ok {
		return nil
	}

	if err := s.prefs.SetFloat(ctx, userID, storage.PrefMonthlyBudget, value); err != nil {
		return fmt.Errorf("failed to store budget preference: %w", err)
	}
	return nil
}

// GetBudget reads the user's monthly budget preference, defaulting when
// never set.
func (s *BudgetService) GetBudget(ctx context.Context, userID string) (float64, error) {
	return s.prefs.GetFloat(ctx, userID, storage.PrefMonthlyBudget, DefaultMonthlyBudget)
}

// SetBudget stores the budget locally and, for a signed-in user, uploads
// it to the remote profile document. The upload is fire-and-forget.
func (s *BudgetService) SetBudget(ctx context.Context, userID string, value float64) error {
	if err := s.prefs.SetFloat(ctx, userID, storage.PrefMonthlyBudget, value); err != nil {
		return fmt.Errorf("failed to store budget preference: %w", err)
	}

	if userID != "" {
		s.dispatcher.Enqueue(remote.Op{
			Kind: remote.OpSet,
			Key:  identity.BudgetKey(userID),
			Doc:  bson.M{remote.FieldMonthlyBudget: value},
		})
	}
	return nil
}

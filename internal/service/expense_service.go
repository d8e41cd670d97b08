package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/expense-sync/internal/expense"
	"github.com/carson-networks/expense-sync/internal/storage"
	syncengine "github.com/carson-networks/expense-sync/internal/sync"
)

// ExpenseService handles expense business logic: local persistence plus
// remote propagation through the sync engine.
type ExpenseService struct {
	expenses storage.IExpenseTable
	engine   *syncengine.Engine
	logger   *logrus.Logger
}

// NewExpenseService creates a new ExpenseService.
func NewExpenseService(expenses storage.IExpenseTable, engine *syncengine.Engine, logger *logrus.Logger) *ExpenseService {
	return &ExpenseService{expenses: expenses, engine: engine, logger: logger}
}

// Create inserts a new expense locally and pushes it to the remote store
// when a user is signed in. The local insert is authoritative; the remote
// half is fire-and-forget.
func (s *ExpenseService) Create(ctx context.Context, userID string, e *expense.Expense) error {
	if _, err := s.expenses.Insert(ctx, e); err != nil {
		return fmt.Errorf("failed to save expense: %w", err)
	}
	s.engine.PushOne(userID, e)
	return nil
}

// Update overwrites the expense matching old with updated, locally and
// remotely. Returns the local affected-row count.
func (s *ExpenseService) Update(ctx context.Context, userID string, old, updated *expense.Expense) (int64, error) {
	return s.engine.Update(ctx, userID, old, updated)
}

// Delete removes the expense matching rec, locally and remotely. Returns
// the local affected-row count.
func (s *ExpenseService) Delete(ctx context.Context, userID string, rec *expense.Expense) (int64, error) {
	return s.engine.Delete(ctx, userID, rec)
}

// List returns expenses filtered and ordered per opts.
func (s *ExpenseService) List(ctx context.Context, opts ListOptions) ([]*expense.Expense, error) {
	records, err := s.expenses.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	if opts.Category != "" {
		filtered := records[:0:0]
		for _, rec := range records {
			if rec.Category == opts.Category {
				filtered = append(filtered, rec)
			}
		}
		records = filtered
	}

	sortExpenses(records, opts.Sort)
	return records, nil
}

// Sync runs the signed-in reconciliation flow: pull remote records into
// the local store, then push the merged local set back out. Returns the
// pull stats.
func (s *ExpenseService) Sync(ctx context.Context, userID string) (syncengine.Stats, error) {
	stats, err := s.engine.PullAll(ctx, userID)
	if err != nil {
		return stats, err
	}
	if err := s.engine.PushAll(ctx, userID); err != nil {
		return stats, err
	}
	return stats, nil
}

func sortExpenses(records []*expense.Expense, mode SortMode) {
	switch mode {
	case SortAmountDesc:
		sort.SliceStable(records, func(i, j int) bool { return records[i].Amount > records[j].Amount })
	case SortAmountAsc:
		sort.SliceStable(records, func(i, j int) bool { return records[i].Amount < records[j].Amount })
	case SortDateAsc:
		sort.SliceStable(records, func(i, j int) bool { return dateOf(records[i]).Before(dateOf(records[j])) })
	case SortCategory:
		sort.SliceStable(records, func(i, j int) bool { return records[i].Category < records[j].Category })
	default: // SortDateDesc
		sort.SliceStable(records, func(i, j int) bool { return dateOf(records[j]).Before(dateOf(records[i])) })
	}
}

// dateOf parses for ordering only; unparseable dates sort to the zero
// time rather than failing the listing.
func dateOf(rec *expense.Expense) time.Time {
	t, err := expense.ParseDate(rec.Date)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Package sync reconciles the device-local expense store with the
// per-user remote document store.
//
// The two stores share no key space: remote documents are addressed by a
// key derived from a record's identity fields, local rows are matched by
// field equality. Consistency is eventual and best-effort. There is no
// tombstone log, so a record deleted locally after it was pushed comes
// back on the next pull; that is observed behavior this engine preserves.
package sync

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/carson-networks/expense-sync/internal/expense"
	"github.com/carson-networks/expense-sync/internal/identity"
	"github.com/carson-networks/expense-sync/internal/remote"
	"github.com/carson-networks/expense-sync/internal/storage"
)

// Stats summarizes one pull run.
type Stats struct {
	Fetched    int
	Inserted   int
	Duplicates int
	Malformed  int
}

// Engine orchestrates push, pull and update/delete propagation. Every
// method takes the user id explicitly; an empty id means no user is
// signed in and suppresses all remote work as a guard, not an error.
// Local failures propagate to the caller; remote writes go through the
// dispatcher where failures are logged and dropped.
type Engine struct {
	expenses   storage.IExpenseTable
	remote     remote.Store
	dispatcher *remote.Dispatcher
	logger     *logrus.Logger
}

func NewEngine(expenses storage.IExpenseTable, store remote.Store, dispatcher *remote.Dispatcher, logger *logrus.Logger) *Engine {
	return &Engine{
		expenses:   expenses,
		remote:     store,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// PushAll uploads every local expense to its derived remote key. Each
// write is an independent fire-and-forget op; re-running with an
// unchanged local set produces an identical remote state.
func (e *Engine) PushAll(ctx context.Context, userID string) error {
	if userID == "" {
		return nil
	}

	records, err := e.expenses.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to read local expenses: %w", err)
	}

	for _, rec := range records {
		e.PushOne(userID, rec)
	}

	e.logger.WithFields(logrus.Fields{
		"userID": userID,
		"count":  len(records),
	}).Info("SyncEngine.PushAll.enqueued")
	return nil
}

// PushOne uploads a single expense, creating or overwriting the remote
// document at its derived key.
func (e *Engine) PushOne(userID string, rec *expense.Expense) {
	if userID == "" {
		return
	}
	e.dispatcher.Enqueue(remote.Op{
		Kind: remote.OpSet,
		Key:  identity.ExpenseKey(userID, identity.Derive(rec)),
		Doc:  docOf(rec),
	})
}

// PullAll fetches the user's entire remote expense collection in one
// snapshot and inserts every record that has no local row with the same
// title, amount, date and category. Documents missing a required field
// are skipped silently. The existence check runs against the local
// snapshot loaded at the start of the pull, O(n*m) by design.
func (e *Engine) PullAll(ctx context.Context, userID string) (Stats, error) {
	var stats Stats
	if userID == "" {
		return stats, nil
	}

	docs, err := e.remote.ListAll(ctx, identity.ExpenseNamespace(userID))
	if err != nil {
		return stats, fmt.Errorf("failed to fetch remote expenses: %w", err)
	}

	local, err := e.expenses.ListAll(ctx)
	if err != nil {
		return stats, fmt.Errorf("failed to read local expenses: %w", err)
	}

	runID := uuid.Must(uuid.NewV4())
	stats.Fetched = len(docs)

	for _, doc := range docs {
		candidate, ok := expenseFromDoc(doc)
		if !ok {
			// Data-quality condition, not an error: skip without
			// inserting and without reporting.
			stats.Malformed++
			e.logger.WithField("runID", runID.String()).Debug("SyncEngine.PullAll.malformed document skipped")
			continue
		}

		if containsEqual(local, candidate) {
			stats.Duplicates++
			continue
		}

		if _, err := e.expenses.Insert(ctx, candidate); err != nil {
			return stats, fmt.Errorf("failed to insert pulled expense: %w", err)
		}
		local = append(local, candidate)
		stats.Inserted++
	}

	e.logger.WithFields(logrus.Fields{
		"runID":      runID.String(),
		"userID":     userID,
		"fetched":    stats.Fetched,
		"inserted":   stats.Inserted,
		"duplicates": stats.Duplicates,
		"malformed":  stats.Malformed,
	}).Info("SyncEngine.PullAll.complete")
	return stats, nil
}

// Update overwrites the local row matching old's four fields with the
// updated record and propagates the change to the remote store. When the
// identity fields changed, the document at the old key is deleted before
// the new one is written; the pair is not transactional. Returns the
// local affected-row count.
func (e *Engine) Update(ctx context.Context, userID string, old, updated *expense.Expense) (int64, error) {
	affected, err := e.expenses.UpdateByFields(ctx, expense.FieldsOf(old), updated)
	if err != nil {
		return 0, fmt.Errorf("failed to update local expense: %w", err)
	}
	if affected != 1 {
		e.logger.WithFields(logrus.Fields{
			"affected": affected,
			"title":    old.Title,
		}).Warn("SyncEngine.Update.ambiguous local match")
	}

	if userID == "" {
		return affected, nil
	}

	oldKey := identity.ExpenseKey(userID, identity.Derive(old))
	newKey := identity.ExpenseKey(userID, identity.Derive(updated))

	if oldKey != newKey {
		e.dispatcher.Enqueue(remote.Op{Kind: remote.OpDelete, Key: oldKey})
	}
	e.dispatcher.Enqueue(remote.Op{Kind: remote.OpSet, Key: newKey, Doc: docOf(updated)})

	return affected, nil
}

// Delete removes the local row matching rec's four fields and enqueues
// deletion of the remote document at its derived key. The local delete is
// never rolled back when the remote half fails. Returns the local
// affected-row count.
func (e *Engine) Delete(ctx context.Context, userID string, rec *expense.Expense) (int64, error) {
	affected, err := e.expenses.DeleteByFields(ctx, expense.FieldsOf(rec))
	if err != nil {
		return 0, fmt.Errorf("failed to delete local expense: %w", err)
	}
	if affected != 1 {
		e.logger.WithFields(logrus.Fields{
			"affected": affected,
			"title":    rec.Title,
		}).Warn("SyncEngine.Delete.ambiguous local match")
	}

	if userID == "" {
		return affected, nil
	}

	e.dispatcher.Enqueue(remote.Op{
		Kind: remote.OpDelete,
		Key:  identity.ExpenseKey(userID, identity.Derive(rec)),
	})
	return affected, nil
}

func containsEqual(records []*expense.Expense, candidate *expense.Expense) bool {
	for _, rec := range records {
		if expense.Equal(rec, candidate) {
			return true
		}
	}
	return false
}

func docOf(rec *expense.Expense) bson.M {
	doc := bson.M{
		remote.FieldTitle:    rec.Title,
		remote.FieldAmount:   rec.Amount,
		remote.FieldDate:     rec.Date,
		remote.FieldCategory: rec.Category,
		remote.FieldImageURL: nil,
	}
	if rec.ImageURL != "" {
		doc[remote.FieldImageURL] = rec.ImageURL
	}
	return doc
}

// expenseFromDoc builds a candidate record from a remote document. The
// four required fields must be present and well typed; imageUrl is
// optional and may be null.
func expenseFromDoc(doc bson.M) (*expense.Expense, bool) {
	title, ok := doc[remote.FieldTitle].(string)
	if !ok {
		return nil, false
	}
	amount, ok := remote.Number(doc[remote.FieldAmount])
	if !ok {
		return nil, false
	}
	date, ok := doc[remote.FieldDate].(string)
	if !ok {
		return nil, false
	}
	category, ok := doc[remote.FieldCategory].(string)
	if !ok {
		return nil, false
	}

	rec := &expense.Expense{
		Title:    title,
		Amount:   amount,
		Date:     date,
		Category: category,
	}
	if url, ok := doc[remote.FieldImageURL].(string); ok {
		rec.ImageURL = url
	}
	return rec, true
}

package synchronize

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/expense-sync/internal/logging"
	"github.com/carson-networks/expense-sync/internal/session"
	syncengine "github.com/carson-networks/expense-sync/internal/sync"
)

// SyncInput is the Huma input for triggering a sync.
type SyncInput struct{}

// SyncResponseBody reports what the pull phase saw.
type SyncResponseBody struct {
	Fetched    int `json:"fetched" doc:"Remote documents fetched"`
	Inserted   int `json:"inserted" doc:"Records inserted locally"`
	Duplicates int `json:"duplicates" doc:"Remote records already present locally"`
	Malformed  int `json:"malformed" doc:"Remote documents skipped as malformed"`
}

// SyncOutput is the Huma output for triggering a sync.
type SyncOutput struct {
	Body SyncResponseBody
}

// expenseSyncer is the interface for the pull-then-push expense flow.
type expenseSyncer interface {
	Sync(ctx context.Context, userID string) (syncengine.Stats, error)
}

// budgetPuller is the interface for refreshing the budget preference.
type budgetPuller interface {
	PullBudget(ctx context.Context, userID string) error
}

// Handler handles POST /v1/sync.
type Handler struct {
	ExpenseService expenseSyncer
	BudgetService  budgetPuller
	Session        session.Provider
}

// NewHandler creates a new sync Handler.
func NewHandler(expenses expenseSyncer, budgets budgetPuller, sess session.Provider) *Handler {
	return &Handler{ExpenseService: expenses, BudgetService: budgets, Session: sess}
}

// Register registers the sync endpoint with the Huma API.
func (h *Handler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "sync",
		Method:      http.MethodPost,
		Path:        "/v1/sync",
		Summary:     "Synchronize",
		Description: "Pulls the signed-in user's remote expenses and budget, then pushes the merged local set.",
		Tags:        []string{"Sync"},
	}, h.handle)
}

func (h *Handler) handle(ctx context.Context, _ *SyncInput) (*SyncOutput, error) {
	logData := logging.GetLogData(ctx)

	userID := h.Session.CurrentUser()
	if userID == "" {
		return nil, huma.NewError(http.StatusBadRequest, "no signed-in user")
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("syncMs")
	}
	stats, err := h.ExpenseService.Sync(ctx, userID)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to sync expenses", err)
	}

	if err := h.BudgetService.PullBudget(ctx, userID); err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to refresh budget", err)
	}

	if logData != nil {
		logData.AddData("fetched", stats.Fetched)
		logData.AddData("inserted", stats.Inserted)
	}

	return &SyncOutput{Body: SyncResponseBody{
		Fetched:    stats.Fetched,
		Inserted:   stats.Inserted,
		Duplicates: stats.Duplicates,
		Malformed:  stats.Malformed,
	}}, nil
}

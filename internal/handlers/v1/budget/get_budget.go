package budget

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/expense-sync/internal/session"
)

// GetBudgetInput is the Huma input for reading the monthly budget.
type GetBudgetInput struct{}

// GetBudgetResponseBody is the response body for reading the monthly budget.
type GetBudgetResponseBody struct {
	MonthlyBudget float64 `json:"monthlyBudget" doc:"Monthly budget amount"`
}

// GetBudgetOutput is the Huma output for reading the monthly budget.
type GetBudgetOutput struct {
	Body GetBudgetResponseBody
}

// budgetReader is the interface for reading the budget preference.
type budgetReader interface {
	GetBudget(ctx context.Context, userID string) (float64, error)
}

// GetBudgetHandler handles GET /v1/budget.
type GetBudgetHandler struct {
	BudgetService budgetReader
	Session       session.Provider
}

// NewGetBudgetHandler creates a new GetBudgetHandler.
func NewGetBudgetHandler(svc budgetReader, sess session.Provider) *GetBudgetHandler {
	return &GetBudgetHandler{BudgetService: svc, Session: sess}
}

// Register registers the get budget endpoint with the Huma API.
func (h *GetBudgetHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-budget",
		Method:      http.MethodGet,
		Path:        "/v1/budget",
		Summary:     "Get budget",
		Description: "Returns the monthly budget preference, defaulted when never set.",
		Tags:        []string{"Budget"},
	}, h.handle)
}

func (h *GetBudgetHandler) handle(ctx context.Context, _ *GetBudgetInput) (*GetBudgetOutput, error) {
	value, err := h.BudgetService.GetBudget(ctx, h.Session.CurrentUser())
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to read budget", err)
	}

	return &GetBudgetOutput{Body: GetBudgetResponseBody{MonthlyBudget: value}}, nil
}

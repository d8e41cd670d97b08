package budget

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/expense-sync/internal/session"
)

// SetBudgetBody is the request body for setting the monthly budget.
type SetBudgetBody struct {
	MonthlyBudget float64 `json:"monthlyBudget" required:"true" minimum:"0" doc:"Monthly budget amount"`
}

// SetBudgetInput is the Huma input for setting the monthly budget.
type SetBudgetInput struct {
	Body SetBudgetBody
}

// SetBudgetOutput is the Huma output for setting the monthly budget.
type SetBudgetOutput struct {
	Status int `json:"status" doc:"HTTP status"`
}

// budgetWriter is the interface for writing the budget preference.
type budgetWriter interface {
	SetBudget(ctx context.Context, userID string, value float64) error
}

// SetBudgetHandler handles PUT /v1/budget.
type SetBudgetHandler struct {
	BudgetService budgetWriter
	Session       session.Provider
}

// NewSetBudgetHandler creates a new SetBudgetHandler.
func NewSetBudgetHandler(svc budgetWriter, sess session.Provider) *SetBudgetHandler {
	return &SetBudgetHandler{BudgetService: svc, Session: sess}
}

// Register registers the set budget endpoint with the Huma API.
func (h *SetBudgetHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "set-budget",
		Method:      http.MethodPut,
		Path:        "/v1/budget",
		Summary:     "Set budget",
		Description: "Stores the monthly budget locally and uploads it for a signed-in user.",
		Tags:        []string{"Budget"},
	}, h.handle)
}

func (h *SetBudgetHandler) handle(ctx context.Context, input *SetBudgetInput) (*SetBudgetOutput, error) {
	err := h.BudgetService.SetBudget(ctx, h.Session.CurrentUser(), input.Body.MonthlyBudget)
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to store budget", err)
	}

	return &SetBudgetOutput{Status: http.StatusOK}, nil
}

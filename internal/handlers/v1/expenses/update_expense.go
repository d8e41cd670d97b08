package expenses

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/expense-sync/internal/expense"
	"github.com/carson-networks/expense-sync/internal/session"
)

// UpdateExpenseBody is the request body for updating an expense. The
// old record identifies what to overwrite; matching is by exact field
// values, not by a server-side ID.
type UpdateExpenseBody struct {
	Old     Expense `json:"old" required:"true" doc:"Record to overwrite, matched on exact field values"`
	Updated Expense `json:"updated" required:"true" doc:"New field values"`
}

// UpdateExpenseInput is the Huma input for updating an expense.
type UpdateExpenseInput struct {
	Body UpdateExpenseBody
}

// UpdateExpenseResponseBody is the response body for updating an expense.
type UpdateExpenseResponseBody struct {
	Affected int64 `json:"affected" doc:"Number of local rows updated"`
}

// UpdateExpenseOutput is the Huma output for updating an expense.
type UpdateExpenseOutput struct {
	Body UpdateExpenseResponseBody
}

// expenseUpdater is the interface for updating expenses.
type expenseUpdater interface {
	Update(ctx context.Context, userID string, old, updated *expense.Expense) (int64, error)
}

// UpdateExpenseHandler handles PUT /v1/expenses.
type UpdateExpenseHandler struct {
	ExpenseService expenseUpdater
	Session        session.Provider
}

// NewUpdateExpenseHandler creates a new UpdateExpenseHandler.
func NewUpdateExpenseHandler(svc expenseUpdater, sess session.Provider) *UpdateExpenseHandler {
	return &UpdateExpenseHandler{ExpenseService: svc, Session: sess}
}

// Register registers the update expense endpoint with the Huma API.
func (h *UpdateExpenseHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "update-expense",
		Method:      http.MethodPut,
		Path:        "/v1/expenses",
		Summary:     "Update expense",
		Description: "Overwrites a matching local expense and moves its remote copy for a signed-in user.",
		Tags:        []string{"Expenses"},
	}, h.handle)
}

func (h *UpdateExpenseHandler) handle(ctx context.Context, input *UpdateExpenseInput) (*UpdateExpenseOutput, error) {
	old, err := toRecord(input.Body.Old)
	if err != nil {
		return nil, err
	}
	updated, err := toRecord(input.Body.Updated)
	if err != nil {
		return nil, err
	}

	affected, err := h.ExpenseService.Update(ctx, h.Session.CurrentUser(), old, updated)
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to update expense", err)
	}

	return &UpdateExpenseOutput{Body: UpdateExpenseResponseBody{Affected: affected}}, nil
}

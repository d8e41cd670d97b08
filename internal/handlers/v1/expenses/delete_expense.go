package expenses

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/expense-sync/internal/expense"
	"github.com/carson-networks/expense-sync/internal/session"
)

// DeleteExpenseInput is the Huma input for deleting an expense. The
// body carries the record to remove, matched on exact field values.
type DeleteExpenseInput struct {
	Body Expense
}

// DeleteExpenseResponseBody is the response body for deleting an expense.
type DeleteExpenseResponseBody struct {
	Affected int64 `json:"affected" doc:"Number of local rows deleted"`
}

// DeleteExpenseOutput is the Huma output for deleting an expense.
type DeleteExpenseOutput struct {
	Body DeleteExpenseResponseBody
}

// expenseDeleter is the interface for deleting expenses.
type expenseDeleter interface {
	Delete(ctx context.Context, userID string, rec *expense.Expense) (int64, error)
}

// DeleteExpenseHandler handles DELETE /v1/expenses.
type DeleteExpenseHandler struct {
	ExpenseService expenseDeleter
	Session        session.Provider
}

// NewDeleteExpenseHandler creates a new DeleteExpenseHandler.
func NewDeleteExpenseHandler(svc expenseDeleter, sess session.Provider) *DeleteExpenseHandler {
	return &DeleteExpenseHandler{ExpenseService: svc, Session: sess}
}

// Register registers the delete expense endpoint with the Huma API.
func (h *DeleteExpenseHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "delete-expense",
		Method:      http.MethodDelete,
		Path:        "/v1/expenses",
		Summary:     "Delete expense",
		Description: "Removes a matching local expense and its remote copy for a signed-in user.",
		Tags:        []string{"Expenses"},
	}, h.handle)
}

func (h *DeleteExpenseHandler) handle(ctx context.Context, input *DeleteExpenseInput) (*DeleteExpenseOutput, error) {
	rec, err := toRecord(input.Body)
	if err != nil {
		return nil, err
	}

	affected, err := h.ExpenseService.Delete(ctx, h.Session.CurrentUser(), rec)
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to delete expense", err)
	}

	return &DeleteExpenseOutput{Body: DeleteExpenseResponseBody{Affected: affected}}, nil
}

package expenses

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/expense-sync/internal/expense"
	"github.com/carson-networks/expense-sync/internal/logging"
	"github.com/carson-networks/expense-sync/internal/session"
)

// CreateExpenseInput is the Huma input for creating an expense.
type CreateExpenseInput struct {
	Body Expense
}

// CreateExpenseOutput is the Huma output for creating an expense.
type CreateExpenseOutput struct {
	Status int `json:"status" doc:"HTTP status"`
}

// expenseCreator is the interface for creating expenses.
type expenseCreator interface {
	Create(ctx context.Context, userID string, rec *expense.Expense) error
}

// CreateExpenseHandler handles POST /v1/expenses.
type CreateExpenseHandler struct {
	ExpenseService expenseCreator
	Session        session.Provider
}

// NewCreateExpenseHandler creates a new CreateExpenseHandler.
func NewCreateExpenseHandler(svc expenseCreator, sess session.Provider) *CreateExpenseHandler {
	return &CreateExpenseHandler{ExpenseService: svc, Session: sess}
}

// Register registers the create expense endpoint with the Huma API.
func (h *CreateExpenseHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-expense",
		Method:      http.MethodPost,
		Path:        "/v1/expenses",
		Summary:     "Create expense",
		Description: "Saves a new expense locally and uploads it for a signed-in user.",
		Tags:        []string{"Expenses"},
	}, h.handle)
}

func (h *CreateExpenseHandler) handle(ctx context.Context, input *CreateExpenseInput) (*CreateExpenseOutput, error) {
	logData := logging.GetLogData(ctx)

	rec, err := toRecord(input.Body)
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("createExpenseMs")
	}
	err = h.ExpenseService.Create(ctx, h.Session.CurrentUser(), rec)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to create expense", err)
	}

	return &CreateExpenseOutput{Status: http.StatusCreated}, nil
}

package expenses

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/expense-sync/internal/expense"
	"github.com/carson-networks/expense-sync/internal/logging"
	"github.com/carson-networks/expense-sync/internal/service"
)

// ListExpensesInput is the Huma input for listing expenses.
type ListExpensesInput struct {
	Category string `query:"category" doc:"Only return expenses in this category"`
	Sort     string `query:"sort" enum:"date_desc,date_asc,amount_desc,amount_asc,category" doc:"Sort order, defaults to date_desc"`
}

// ListExpensesResponseBody is the response body for listing expenses.
type ListExpensesResponseBody struct {
	Expenses []Expense `json:"expenses" doc:"Matching expenses"`
}

// ListExpensesOutput is the Huma output for listing expenses.
type ListExpensesOutput struct {
	Body ListExpensesResponseBody
}

// expenseLister is the interface for listing expenses.
type expenseLister interface {
	List(ctx context.Context, opts service.ListOptions) ([]*expense.Expense, error)
}

// ListExpensesHandler handles GET /v1/expenses.
type ListExpensesHandler struct {
	ExpenseService expenseLister
}

// NewListExpensesHandler creates a new ListExpensesHandler.
func NewListExpensesHandler(svc expenseLister) *ListExpensesHandler {
	return &ListExpensesHandler{ExpenseService: svc}
}

// Register registers the list expenses endpoint with the Huma API.
func (h *ListExpensesHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-expenses",
		Method:      http.MethodGet,
		Path:        "/v1/expenses",
		Summary:     "List expenses",
		Description: "Returns expenses from the local store, optionally filtered and sorted.",
		Tags:        []string{"Expenses"},
	}, h.handle)
}

func (h *ListExpensesHandler) handle(ctx context.Context, input *ListExpensesInput) (*ListExpensesOutput, error) {
	logData := logging.GetLogData(ctx)

	opts := service.ListOptions{
		Category: input.Category,
		Sort:     service.SortMode(input.Sort),
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("listExpensesMs")
	}
	records, err := h.ExpenseService.List(ctx, opts)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to list expenses", err)
	}

	if logData != nil {
		logData.AddData("expenseCount", len(records))
	}

	resp := ListExpensesResponseBody{
		Expenses: make([]Expense, len(records)),
	}
	for i, rec := range records {
		resp.Expenses[i] = fromRecord(rec)
	}

	return &ListExpensesOutput{Body: resp}, nil
}

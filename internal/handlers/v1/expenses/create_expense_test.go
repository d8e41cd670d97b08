package expenses

import (
	"context"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/expense-sync/internal/expense"
	"github.com/carson-networks/expense-sync/internal/session"
)

// mockExpenseCreator is a mock for expenseCreator.
type mockExpenseCreator struct {
	mock.Mock
}

func (m *mockExpenseCreator) Create(ctx context.Context, userID string, rec *expense.Expense) error {
	args := m.Called(ctx, userID, rec)
	return args.Error(0)
}

func newCreateTestAPI(t *testing.T, svc expenseCreator, userID string) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewCreateExpenseHandler(svc, &session.Static{UserID: userID}).Register(api)
	return api
}

func TestHTTP_CreateExpense_Success(t *testing.T) {
	mockSvc := new(mockExpenseCreator)
	mockSvc.On("Create", mock.Anything, "a@b.com", mock.MatchedBy(func(rec *expense.Expense) bool {
		return rec.Title == "Coffee" && rec.Amount == 4.5 && rec.Date == "1/6/2025" && rec.Category == expense.CategoryFood
	})).Return(nil)

	resp := newCreateTestAPI(t, mockSvc, "a@b.com").Post("/v1/expenses", Expense{
		Title:    "Coffee",
		Amount:   4.5,
		Date:     "1/6/2025",
		Category: expense.CategoryFood,
	})

	assert.Equal(t, http.StatusCreated, resp.Code)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_CreateExpense_SignedOutUserPassedThrough(t *testing.T) {
	mockSvc := new(mockExpenseCreator)
	mockSvc.On("Create", mock.Anything, "", mock.Anything).Return(nil)

	resp := newCreateTestAPI(t, mockSvc, "").Post("/v1/expenses", Expense{
		Title:    "Coffee",
		Amount:   4.5,
		Date:     "1/6/2025",
		Category: expense.CategoryFood,
	})

	assert.Equal(t, http.StatusCreated, resp.Code)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_CreateExpense_InvalidDate(t *testing.T) {
	mockSvc := new(mockExpenseCreator)

	resp := newCreateTestAPI(t, mockSvc, "a@b.com").Post("/v1/expenses", Expense{
		Title:    "Coffee",
		Amount:   4.5,
		Date:     "June 1st",
		Category: expense.CategoryFood,
	})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	mockSvc.AssertNotCalled(t, "Create")
}

func TestHTTP_CreateExpense_MissingTitle(t *testing.T) {
	mockSvc := new(mockExpenseCreator)

	resp := newCreateTestAPI(t, mockSvc, "a@b.com").Post("/v1/expenses", map[string]interface{}{
		"amount":   4.5,
		"date":     "1/6/2025",
		"category": expense.CategoryFood,
	})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	mockSvc.AssertNotCalled(t, "Create")
}

func TestHTTP_CreateExpense_ServiceError(t *testing.T) {
	mockSvc := new(mockExpenseCreator)
	mockSvc.On("Create", mock.Anything, "a@b.com", mock.Anything).Return(assert.AnError)

	resp := newCreateTestAPI(t, mockSvc, "a@b.com").Post("/v1/expenses", Expense{
		Title:    "Coffee",
		Amount:   4.5,
		Date:     "1/6/2025",
		Category: expense.CategoryFood,
	})

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	mockSvc.AssertExpectations(t)
}

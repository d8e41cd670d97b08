package budget

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/expense-sync/internal/session"
)

// mockBudgetService is a mock for budgetReader and budgetWriter.
type mockBudgetService struct {
	mock.Mock
}

func (m *mockBudgetService) GetBudget(ctx context.Context, userID string) (float64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(float64), args.Error(1)
}

func (m *mockBudgetService) SetBudget(ctx context.Context, userID string, value float64) error {
	args := m.Called(ctx, userID, value)
	return args.Error(0)
}

func TestHTTP_GetBudget_Success(t *testing.T) {
	mockSvc := new(mockBudgetService)
	mockSvc.On("GetBudget", mock.Anything, "a@b.com").Return(2500.0, nil)

	_, api := humatest.New(t)
	NewGetBudgetHandler(mockSvc, &session.Static{UserID: "a@b.com"}).Register(api)

	resp := api.Get("/v1/budget")

	assert.Equal(t, http.StatusOK, resp.Code)
	var body GetBudgetResponseBody
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 2500.0, body.MonthlyBudget)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_GetBudget_ServiceError(t *testing.T) {
	mockSvc := new(mockBudgetService)
	mockSvc.On("GetBudget", mock.Anything, mock.Anything).Return(0.0, assert.AnError)

	_, api := humatest.New(t)
	NewGetBudgetHandler(mockSvc, &session.Static{}).Register(api)

	resp := api.Get("/v1/budget")

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
}

func TestHTTP_SetBudget_Success(t *testing.T) {
	mockSvc := new(mockBudgetService)
	mockSvc.On("SetBudget", mock.Anything, "a@b.com", 1800.0).Return(nil)

	_, api := humatest.New(t)
	NewSetBudgetHandler(mockSvc, &session.Static{UserID: "a@b.com"}).Register(api)

	resp := api.Put("/v1/budget", SetBudgetBody{MonthlyBudget: 1800})

	assert.Equal(t, http.StatusOK, resp.Code)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_SetBudget_NegativeRejected(t *testing.T) {
	mockSvc := new(mockBudgetService)

	_, api := humatest.New(t)
	NewSetBudgetHandler(mockSvc, &session.Static{UserID: "a@b.com"}).Register(api)

	resp := api.Put("/v1/budget", SetBudgetBody{MonthlyBudget: -5})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	mockSvc.AssertNotCalled(t, "SetBudget")
}

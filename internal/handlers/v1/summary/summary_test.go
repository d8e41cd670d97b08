package summary

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/expense-sync/internal/expense"
	"github.com/carson-networks/expense-sync/internal/service"
	"github.com/carson-networks/expense-sync/internal/session"
)

// mockSummaryService is a mock for monthlySummarizer and breakdownReporter.
type mockSummaryService struct {
	mock.Mock
}

func (m *mockSummaryService) MonthlySummary(ctx context.Context, userID string, now time.Time) (*service.MonthlySummary, error) {
	args := m.Called(ctx, userID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.MonthlySummary), args.Error(1)
}

func (m *mockSummaryService) CategoryBreakdown(ctx context.Context, mode service.Mode, now time.Time) ([]service.CategoryTotal, error) {
	args := m.Called(ctx, mode, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.CategoryTotal), args.Error(1)
}

func (m *mockSummaryService) SpendOverTime(ctx context.Context, mode service.Mode, now time.Time) ([]service.TimeBucket, error) {
	args := m.Called(ctx, mode, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.TimeBucket), args.Error(1)
}

func TestHTTP_MonthlySummary_Success(t *testing.T) {
	mockSvc := new(mockSummaryService)
	mockSvc.On("MonthlySummary", mock.Anything, "a@b.com", mock.Anything).Return(&service.MonthlySummary{
		TotalSpent:     decimal.RequireFromString("350.30"),
		Budget:         decimal.NewFromInt(1000),
		Remaining:      decimal.RequireFromString("649.70"),
		UsagePercent:   35.03,
		AvgDailySpend:  decimal.RequireFromString("25.02"),
		AvgWeeklySpend: decimal.RequireFromString("175.15"),
		Categories: []service.CategoryTotal{
			{Category: expense.CategoryFood, Total: decimal.RequireFromString("300.30")},
			{Category: expense.CategoryTransport, Total: decimal.NewFromInt(50)},
		},
	}, nil)

	_, api := humatest.New(t)
	NewMonthlySummaryHandler(mockSvc, &session.Static{UserID: "a@b.com"}).Register(api)

	resp := api.Get("/v1/summary/monthly")

	assert.Equal(t, http.StatusOK, resp.Code)
	var body MonthlySummaryResponseBody
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "350.3", body.TotalSpent)
	assert.Equal(t, "1000", body.Budget)
	assert.False(t, body.BudgetAlert)
	assert.Len(t, body.Categories, 2)
	assert.Equal(t, expense.CategoryFood, body.Categories[0].Category)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_CategoryBreakdown_YearMode(t *testing.T) {
	mockSvc := new(mockSummaryService)
	mockSvc.On("CategoryBreakdown", mock.Anything, service.ModeYear, mock.Anything).Return([]service.CategoryTotal{
		{Category: expense.CategoryShopping, Total: decimal.NewFromInt(40)},
	}, nil)

	_, api := humatest.New(t)
	NewBreakdownHandler(mockSvc).Register(api)

	resp := api.Get("/v1/summary/categories?mode=year")

	assert.Equal(t, http.StatusOK, resp.Code)
	var body CategoryBreakdownResponseBody
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Len(t, body.Categories, 1)
	assert.Equal(t, "40", body.Categories[0].Total)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_SpendOverTime_DefaultsToMonthMode(t *testing.T) {
	mockSvc := new(mockSummaryService)
	mockSvc.On("SpendOverTime", mock.Anything, service.ModeMonth, mock.Anything).Return([]service.TimeBucket{
		{Label: "1/6/2025", Total: decimal.NewFromInt(30)},
		{Label: "9/6/2025", Total: decimal.NewFromInt(5)},
	}, nil)

	_, api := humatest.New(t)
	NewBreakdownHandler(mockSvc).Register(api)

	resp := api.Get("/v1/summary/timeline")

	assert.Equal(t, http.StatusOK, resp.Code)
	var body SpendOverTimeResponseBody
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Len(t, body.Buckets, 2)
	assert.Equal(t, "1/6/2025", body.Buckets[0].Label)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_MonthlySummary_ServiceError(t *testing.T) {
	mockSvc := new(mockSummaryService)
	mockSvc.On("MonthlySummary", mock.Anything, mock.Anything, mock.Anything).Return(nil, assert.AnError)

	_, api := humatest.New(t)
	NewMonthlySummaryHandler(mockSvc, &session.Static{}).Register(api)

	resp := api.Get("/v1/summary/monthly")

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
}

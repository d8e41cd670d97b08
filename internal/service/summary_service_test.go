package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/expense-sync/internal/expense"
)

func TestSummaryService_MonthlySummary(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// 14 June: two weeks into the month.
	now := time.Date(2025, time.June, 14, 12, 0, 0, 0, time.UTC)

	require.NoError(t, env.service.Expense.Create(ctx, "", record("Lunch", 100.10, "1/6/2025", expense.CategoryFood)))
	require.NoError(t, env.service.Expense.Create(ctx, "", record("Dinner", 200.20, "10/6/2025", expense.CategoryFood)))
	require.NoError(t, env.service.Expense.Create(ctx, "", record("Bus", 49.70, "5/6/2025", expense.CategoryTransport)))
	// Outside the month; must not count.
	require.NoError(t, env.service.Expense.Create(ctx, "", record("Old", 999, "5/5/2025", expense.CategoryFood)))
	require.NoError(t, env.service.Expense.Create(ctx, "", record("Next year", 999, "5/6/2026", expense.CategoryFood)))

	require.NoError(t, env.service.Budget.SetBudget(ctx, testUser, 1000))

	summary, err := env.service.Summary.MonthlySummary(ctx, testUser, now)
	require.NoError(t, err)

	// Decimal accumulation keeps the cents exact: 100.10+200.20+49.70.
	assert.True(t, summary.TotalSpent.Equal(decimal.RequireFromString("350.00")), summary.TotalSpent.String())
	assert.True(t, summary.Remaining.Equal(decimal.RequireFromString("650.00")), summary.Remaining.String())
	assert.InDelta(t, 35.0, summary.UsagePercent, 0.0001)
	assert.False(t, summary.BudgetAlert)

	assert.True(t, summary.AvgDailySpend.Equal(decimal.RequireFromString("25")), summary.AvgDailySpend.String())
	assert.True(t, summary.AvgWeeklySpend.Equal(decimal.RequireFromString("175")), summary.AvgWeeklySpend.String())

	require.NotEmpty(t, summary.Categories)
	assert.Equal(t, expense.CategoryFood, summary.Categories[0].Category)
	assert.True(t, summary.Categories[0].Total.Equal(decimal.RequireFromString("300.30")))
	assert.Equal(t, expense.CategoryTransport, summary.Categories[1].Category)
	assert.Equal(t, []string{expense.CategoryFood, expense.CategoryTransport}, summary.TopCategories)
}

func TestSummaryService_BudgetAlertAtThreshold(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	now := time.Date(2025, time.June, 14, 0, 0, 0, 0, time.UTC)

	require.NoError(t, env.service.Budget.SetBudget(ctx, testUser, 1000))
	require.NoError(t, env.service.Expense.Create(ctx, "", record("Rent", 900, "1/6/2025", expense.CategoryUtilities)))

	summary, err := env.service.Summary.MonthlySummary(ctx, testUser, now)
	require.NoError(t, err)
	assert.True(t, summary.BudgetAlert)
}

func TestSummaryService_EmptyMonth(t *testing.T) {
	env := newTestEnv(t)
	now := time.Date(2025, time.June, 14, 0, 0, 0, 0, time.UTC)

	summary, err := env.service.Summary.MonthlySummary(context.Background(), testUser, now)
	require.NoError(t, err)

	assert.True(t, summary.TotalSpent.IsZero())
	assert.True(t, summary.Budget.Equal(decimal.NewFromInt(DefaultMonthlyBudget)))
	assert.Zero(t, summary.UsagePercent)
	assert.False(t, summary.BudgetAlert)
	assert.True(t, summary.AvgDailySpend.IsZero())
}

func TestSummaryService_CategoryBreakdownYearMode(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	now := time.Date(2025, time.June, 14, 0, 0, 0, 0, time.UTC)

	require.NoError(t, env.service.Expense.Create(ctx, "", record("Lunch", 10, "1/2/2025", expense.CategoryFood)))
	require.NoError(t, env.service.Expense.Create(ctx, "", record("Bus", 30, "1/6/2025", expense.CategoryTransport)))
	require.NoError(t, env.service.Expense.Create(ctx, "", record("Past", 50, "1/6/2024", expense.CategoryFood)))

	totals, err := env.service.Summary.CategoryBreakdown(ctx, ModeYear, now)
	require.NoError(t, err)

	byCategory := map[string]decimal.Decimal{}
	for _, entry := range totals {
		byCategory[entry.Category] = entry.Total
	}
	assert.True(t, byCategory[expense.CategoryFood].Equal(decimal.NewFromInt(10)))
	assert.True(t, byCategory[expense.CategoryTransport].Equal(decimal.NewFromInt(30)))
	assert.Equal(t, expense.CategoryTransport, totals[0].Category)
}

func TestSummaryService_SpendOverTime(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	now := time.Date(2025, time.June, 14, 0, 0, 0, 0, time.UTC)

	require.NoError(t, env.service.Expense.Create(ctx, "", record("Lunch", 10, "1/6/2025", expense.CategoryFood)))
	require.NoError(t, env.service.Expense.Create(ctx, "", record("Dinner", 20, "1/6/2025", expense.CategoryFood)))
	require.NoError(t, env.service.Expense.Create(ctx, "", record("Bus", 5, "9/6/2025", expense.CategoryTransport)))
	require.NoError(t, env.service.Expense.Create(ctx, "", record("Gift", 40, "3/2/2025", expense.CategoryShopping)))
	require.NoError(t, env.service.Expense.Create(ctx, "", record("Bad date", 99, "junk", expense.CategoryOther)))

	// Month mode buckets by day within June.
	buckets, err := env.service.Summary.SpendOverTime(ctx, ModeMonth, now)
	require.NoError(t, err)
	require.Len(t, buckets, 2)
	assert.Equal(t, "1/6/2025", buckets[0].Label)
	assert.True(t, buckets[0].Total.Equal(decimal.NewFromInt(30)))
	assert.Equal(t, "9/6/2025", buckets[1].Label)
	assert.True(t, buckets[1].Total.Equal(decimal.NewFromInt(5)))

	// Year mode buckets by month across 2025.
	buckets, err = env.service.Summary.SpendOverTime(ctx, ModeYear, now)
	require.NoError(t, err)
	require.Len(t, buckets, 2)
	assert.Equal(t, "February", buckets[0].Label)
	assert.True(t, buckets[0].Total.Equal(decimal.NewFromInt(40)))
	assert.Equal(t, "June", buckets[1].Label)
	assert.True(t, buckets[1].Total.Equal(decimal.NewFromInt(35)))
}

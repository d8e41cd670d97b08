package service

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/expense-sync/internal/expense"
	"github.com/carson-networks/expense-sync/internal/storage"
)

// budgetAlertThreshold is the usage percentage at which the summary
// raises its alert flag.
const budgetAlertThreshold = 90

// Mode selects the reporting window of a breakdown.
type Mode string

const (
	ModeMonth Mode = "month"
	ModeYear  Mode = "year"
)

// CategoryTotal is the spend accumulated in one category.
type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
}

// TimeBucket is the spend accumulated in one day (month mode) or one
// month (year mode).
type TimeBucket struct {
	Label string
	Total decimal.Decimal
}

// MonthlySummary is the home-screen overview of the current month.
type MonthlySummary struct {
	TotalSpent     decimal.Decimal
	Budget         decimal.Decimal
	Remaining      decimal.Decimal
	UsagePercent   float64
	BudgetAlert    bool // usage at or past the alert threshold
	AvgDailySpend  decimal.Decimal
	AvgWeeklySpend decimal.Decimal
	Categories     []CategoryTotal // highest spend first
	TopCategories  []string        // up to three categories with nonzero spend
}

// SummaryService computes report rollups over the local store. Amounts
// are accumulated as decimals so display totals do not collect float
// error; stored amounts stay float64 per the store contract. Records
// with unparseable dates are skipped, they belong to no window.
type SummaryService struct {
	expenses storage.IExpenseTable
	budgets  *BudgetService
}

// NewSummaryService creates a new SummaryService.
func NewSummaryService(expenses storage.IExpenseTable, budgets *BudgetService) *SummaryService {
	return &SummaryService{expenses: expenses, budgets: budgets}
}

// MonthlySummary builds the overview for the month containing now.
func (s *SummaryService) MonthlySummary(ctx context.Context, userID string, now time.Time) (*MonthlySummary, error) {
	records, err := s.monthRecords(ctx, now)
	if err != nil {
		return nil, err
	}

	budgetValue, err := s.budgets.GetBudget(ctx, userID)
	if err != nil {
		return nil, err
	}
	budget := decimal.NewFromFloat(budgetValue)

	total := decimal.Zero
	byCategory := map[string]decimal.Decimal{}
	for _, rec := range records {
		amount := decimal.NewFromFloat(rec.Amount)
		total = total.Add(amount)
		byCategory[rec.Category] = byCategory[rec.Category].Add(amount)
	}

	summary := &MonthlySummary{
		TotalSpent: total,
		Budget:     budget,
		Remaining:  budget.Sub(total),
		Categories: rankedCategories(byCategory),
	}
	for _, entry := range summary.Categories {
		if len(summary.TopCategories) == 3 || !entry.Total.IsPositive() {
			break
		}
		summary.TopCategories = append(summary.TopCategories, entry.Category)
	}

	if budget.IsPositive() {
		usage, _ := total.Div(budget).Mul(decimal.NewFromInt(100)).Float64()
		summary.UsagePercent = usage
		summary.BudgetAlert = usage >= budgetAlertThreshold
	}

	day := now.Day()
	week := (day + 6) / 7
	summary.AvgDailySpend = total.Div(decimal.NewFromInt(int64(day)))
	summary.AvgWeeklySpend = total.Div(decimal.NewFromInt(int64(week)))

	return summary, nil
}

// CategoryBreakdown totals spend per category over the month or year
// containing now.
func (s *SummaryService) CategoryBreakdown(ctx context.Context, mode Mode, now time.Time) ([]CategoryTotal, error) {
	records, err := s.windowRecords(ctx, mode, now)
	if err != nil {
		return nil, err
	}

	byCategory := map[string]decimal.Decimal{}
	for _, rec := range records {
		byCategory[rec.Category] = byCategory[rec.Category].Add(decimal.NewFromFloat(rec.Amount))
	}
	return rankedCategories(byCategory), nil
}

// SpendOverTime totals spend per day (month mode) or per month (year
// mode) over the window containing now.
func (s *SummaryService) SpendOverTime(ctx context.Context, mode Mode, now time.Time) ([]TimeBucket, error) {
	records, err := s.windowRecords(ctx, mode, now)
	if err != nil {
		return nil, err
	}

	totals := map[int]decimal.Decimal{}
	labels := map[int]string{}
	for _, rec := range records {
		t, err := expense.ParseDate(rec.Date)
		if err != nil {
			continue
		}
		var bucket int
		if mode == ModeYear {
			bucket = int(t.Month())
			labels[bucket] = t.Month().String()
		} else {
			bucket = t.Day()
			labels[bucket] = rec.Date
		}
		totals[bucket] = totals[bucket].Add(decimal.NewFromFloat(rec.Amount))
	}

	keys := make([]int, 0, len(totals))
	for k := range totals {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	buckets := make([]TimeBucket, len(keys))
	for i, k := range keys {
		buckets[i] = TimeBucket{Label: labels[k], Total: totals[k]}
	}
	return buckets, nil
}

func (s *SummaryService) monthRecords(ctx context.Context, now time.Time) ([]*expense.Expense, error) {
	return s.windowRecords(ctx, ModeMonth, now)
}

func (s *SummaryService) windowRecords(ctx context.Context, mode Mode, now time.Time) ([]*expense.Expense, error) {
	records, err := s.expenses.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	var result []*expense.Expense
	for _, rec := range records {
		t, err := expense.ParseDate(rec.Date)
		if err != nil {
			continue
		}
		if t.Year() != now.Year() {
			continue
		}
		if mode != ModeYear && t.Month() != now.Month() {
			continue
		}
		result = append(result, rec)
	}
	return result, nil
}

// rankedCategories lists every well-known category (zero when unspent)
// plus any free-value categories present, highest total first.
func rankedCategories(byCategory map[string]decimal.Decimal) []CategoryTotal {
	seen := map[string]bool{}
	result := make([]CategoryTotal, 0, len(byCategory))

	for _, category := range expense.Categories {
		result = append(result, CategoryTotal{Category: category, Total: byCategory[category]})
		seen[category] = true
	}
	for category, total := range byCategory {
		if !seen[category] {
			result = append(result, CategoryTotal{Category: category, Total: total})
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Total.GreaterThan(result[j].Total)
	})
	return result
}

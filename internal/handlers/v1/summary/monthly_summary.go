package summary

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/expense-sync/internal/service"
	"github.com/carson-networks/expense-sync/internal/session"
)

// CategoryTotal is the API model for one category's spend.
type CategoryTotal struct {
	Category string `json:"category" doc:"Category name"`
	Total    string `json:"total" doc:"Decimal total spent"`
}

// MonthlySummaryInput is the Huma input for the monthly summary.
type MonthlySummaryInput struct{}

// MonthlySummaryResponseBody is the response body for the monthly summary.
type MonthlySummaryResponseBody struct {
	TotalSpent     string          `json:"totalSpent" doc:"Decimal total spent this month"`
	Budget         string          `json:"budget" doc:"Decimal monthly budget"`
	Remaining      string          `json:"remaining" doc:"Decimal budget remaining"`
	UsagePercent   float64         `json:"usagePercent" doc:"Budget used, in percent"`
	BudgetAlert    bool            `json:"budgetAlert" doc:"True when spending is at or past the alert threshold"`
	AvgDailySpend  string          `json:"avgDailySpend" doc:"Decimal average spend per elapsed day"`
	AvgWeeklySpend string          `json:"avgWeeklySpend" doc:"Decimal average spend per elapsed week"`
	Categories     []CategoryTotal `json:"categories" doc:"Per-category totals, highest first"`
	TopCategories  []string        `json:"topCategories" doc:"Up to three categories with nonzero spend"`
}

// MonthlySummaryOutput is the Huma output for the monthly summary.
type MonthlySummaryOutput struct {
	Body MonthlySummaryResponseBody
}

// monthlySummarizer is the interface for building the monthly overview.
type monthlySummarizer interface {
	MonthlySummary(ctx context.Context, userID string, now time.Time) (*service.MonthlySummary, error)
}

// MonthlySummaryHandler handles GET /v1/summary/monthly.
type MonthlySummaryHandler struct {
	SummaryService monthlySummarizer
	Session        session.Provider
}

// NewMonthlySummaryHandler creates a new MonthlySummaryHandler.
func NewMonthlySummaryHandler(svc monthlySummarizer, sess session.Provider) *MonthlySummaryHandler {
	return &MonthlySummaryHandler{SummaryService: svc, Session: sess}
}

// Register registers the monthly summary endpoint with the Huma API.
func (h *MonthlySummaryHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "monthly-summary",
		Method:      http.MethodGet,
		Path:        "/v1/summary/monthly",
		Summary:     "Monthly summary",
		Description: "Returns spend totals, budget usage and per-category rollups for the current month.",
		Tags:        []string{"Summary"},
	}, h.handle)
}

func (h *MonthlySummaryHandler) handle(ctx context.Context, _ *MonthlySummaryInput) (*MonthlySummaryOutput, error) {
	result, err := h.SummaryService.MonthlySummary(ctx, h.Session.CurrentUser(), time.Now())
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to build summary", err)
	}

	resp := MonthlySummaryResponseBody{
		TotalSpent:     result.TotalSpent.String(),
		Budget:         result.Budget.String(),
		Remaining:      result.Remaining.String(),
		UsagePercent:   result.UsagePercent,
		BudgetAlert:    result.BudgetAlert,
		AvgDailySpend:  result.AvgDailySpend.String(),
		AvgWeeklySpend: result.AvgWeeklySpend.String(),
		Categories:     make([]CategoryTotal, len(result.Categories)),
		TopCategories:  result.TopCategories,
	}
	for i, entry := range result.Categories {
		resp.Categories[i] = CategoryTotal{Category: entry.Category, Total: entry.Total.String()}
	}

	return &MonthlySummaryOutput{Body: resp}, nil
}

package summary

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/expense-sync/internal/service"
)

// BreakdownInput is the Huma input for the breakdown endpoints.
type BreakdownInput struct {
	Mode string `query:"mode" enum:"month,year" doc:"Reporting window, defaults to month"`
}

func (input *BreakdownInput) mode() service.Mode {
	if input.Mode == string(service.ModeYear) {
		return service.ModeYear
	}
	return service.ModeMonth
}

// CategoryBreakdownResponseBody is the response body for the category breakdown.
type CategoryBreakdownResponseBody struct {
	Categories []CategoryTotal `json:"categories" doc:"Per-category totals, highest first"`
}

// CategoryBreakdownOutput is the Huma output for the category breakdown.
type CategoryBreakdownOutput struct {
	Body CategoryBreakdownResponseBody
}

// TimeBucket is the API model for one point of the spend timeline.
type TimeBucket struct {
	Label string `json:"label" doc:"Day or month the bucket covers"`
	Total string `json:"total" doc:"Decimal total spent in the bucket"`
}

// SpendOverTimeResponseBody is the response body for the spend timeline.
type SpendOverTimeResponseBody struct {
	Buckets []TimeBucket `json:"buckets" doc:"Chronological spend buckets"`
}

// SpendOverTimeOutput is the Huma output for the spend timeline.
type SpendOverTimeOutput struct {
	Body SpendOverTimeResponseBody
}

// breakdownReporter is the interface for the breakdown rollups.
type breakdownReporter interface {
	CategoryBreakdown(ctx context.Context, mode service.Mode, now time.Time) ([]service.CategoryTotal, error)
	SpendOverTime(ctx context.Context, mode service.Mode, now time.Time) ([]service.TimeBucket, error)
}

// BreakdownHandler handles GET /v1/summary/categories and
// GET /v1/summary/timeline.
type BreakdownHandler struct {
	SummaryService breakdownReporter
}

// NewBreakdownHandler creates a new BreakdownHandler.
func NewBreakdownHandler(svc breakdownReporter) *BreakdownHandler {
	return &BreakdownHandler{SummaryService: svc}
}

// Register registers the breakdown endpoints with the Huma API.
func (h *BreakdownHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "category-breakdown",
		Method:      http.MethodGet,
		Path:        "/v1/summary/categories",
		Summary:     "Category breakdown",
		Description: "Returns per-category spend totals over the selected window.",
		Tags:        []string{"Summary"},
	}, h.handleCategories)

	huma.Register(api, huma.Operation{
		OperationID: "spend-over-time",
		Method:      http.MethodGet,
		Path:        "/v1/summary/timeline",
		Summary:     "Spend over time",
		Description: "Returns daily or monthly spend buckets over the selected window.",
		Tags:        []string{"Summary"},
	}, h.handleTimeline)
}

func (h *BreakdownHandler) handleCategories(ctx context.Context, input *BreakdownInput) (*CategoryBreakdownOutput, error) {
	totals, err := h.SummaryService.CategoryBreakdown(ctx, input.mode(), time.Now())
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to build breakdown", err)
	}

	resp := CategoryBreakdownResponseBody{
		Categories: make([]CategoryTotal, len(totals)),
	}
	for i, entry := range totals {
		resp.Categories[i] = CategoryTotal{Category: entry.Category, Total: entry.Total.String()}
	}
	return &CategoryBreakdownOutput{Body: resp}, nil
}

func (h *BreakdownHandler) handleTimeline(ctx context.Context, input *BreakdownInput) (*SpendOverTimeOutput, error) {
	buckets, err := h.SummaryService.SpendOverTime(ctx, input.mode(), time.Now())
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to build timeline", err)
	}

	resp := SpendOverTimeResponseBody{
		Buckets: make([]TimeBucket, len(buckets)),
	}
	for i, bucket := range buckets {
		resp.Buckets[i] = TimeBucket{Label: bucket.Label, Total: bucket.Total.String()}
	}
	return &SpendOverTimeOutput{Body: resp}, nil
}

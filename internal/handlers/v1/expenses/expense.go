package expenses

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/expense-sync/internal/expense"
)

// Expense is the API model for an expense record, used both in request
// and response bodies.
type Expense struct {
	Title    string  `json:"title" required:"true" doc:"Expense title"`
	Amount   float64 `json:"amount" required:"true" minimum:"0" doc:"Amount spent"`
	Date     string  `json:"date" required:"true" doc:"Date in day/month/year form, e.g. 1/6/2025"`
	Category string  `json:"category" required:"true" doc:"Expense category"`
	ImageURL string  `json:"imageUrl,omitempty" doc:"Optional receipt image URL"`
}

// toRecord validates the API model and converts it to the store record.
func toRecord(e Expense) (*expense.Expense, error) {
	if _, err := expense.ParseDate(e.Date); err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid date", err)
	}

	return &expense.Expense{
		Title:    e.Title,
		Amount:   e.Amount,
		Date:     e.Date,
		Category: e.Category,
		ImageURL: e.ImageURL,
	}, nil
}

func fromRecord(rec *expense.Expense) Expense {
	return Expense{
		Title:    rec.Title,
		Amount:   rec.Amount,
		Date:     rec.Date,
		Category: rec.Category,
		ImageURL: rec.ImageURL,
	}
}

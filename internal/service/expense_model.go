package service

// SortMode selects the ordering of a listed expense page.
type SortMode string

const (
	SortDateDesc   SortMode = "date_desc" // default, newest first
	SortDateAsc    SortMode = "date_asc"
	SortAmountDesc SortMode = "amount_desc"
	SortAmountAsc  SortMode = "amount_asc"
	SortCategory   SortMode = "category"
)

// ListOptions filters and orders an expense listing. An empty Category
// means no filter.
type ListOptions struct {
	Category string
	Sort     SortMode
}

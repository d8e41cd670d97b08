package expense

import "time"

// DateLayout is the date format used everywhere an expense date is parsed:
// day and month without zero padding, four digit year ("1/6/2025").
// Expense dates are stored and transferred as strings in this format and
// are never calendar-validated by the sync path.
const DateLayout = "2/1/2006"

// Well-known categories offered by the expense form. Free values are
// tolerated wherever a category is read.
const (
	CategoryFood          = "Food"
	CategoryTransport     = "Transport"
	CategoryUtilities     = "Utilities"
	CategoryEntertainment = "Entertainment"
	CategoryShopping      = "Shopping"
	CategoryOther         = "Other"
)

// Categories lists the well-known categories in display order.
var Categories = []string{
	CategoryFood,
	CategoryTransport,
	CategoryUtilities,
	CategoryEntertainment,
	CategoryShopping,
	CategoryOther,
}

// Expense represents a single expense record.
type Expense struct {
	Title    string
	Amount   float64
	Date     string
	Category string
	ImageURL string // optional local path or URL, empty means absent
}

// Fields is the four-field value identity of an expense: the predicate
// used for local update/delete matching and for pull deduplication.
// ImageURL is deliberately excluded.
type Fields struct {
	Title    string
	Amount   float64
	Date     string
	Category string
}

// FieldsOf extracts the match predicate from an expense.
func FieldsOf(e *Expense) Fields {
	return Fields{
		Title:    e.Title,
		Amount:   e.Amount,
		Date:     e.Date,
		Category: e.Category,
	}
}

// Equal reports whether two expenses carry the same title, amount, date
// and category. Amount comparison is exact, no tolerance: both stores hold
// the same float64 so a round trip must compare equal.
func Equal(a, b *Expense) bool {
	return a.Title == b.Title &&
		a.Amount == b.Amount &&
		a.Date == b.Date &&
		a.Category == b.Category
}

// ParseDate parses an expense date string. Only report rollups call this;
// the sync path treats dates as opaque strings.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

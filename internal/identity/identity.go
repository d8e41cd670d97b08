// Package identity derives the remote document keys used to address
// expense records in the per-user remote store.
//
// The identity of an expense is a deterministic function of its title,
// amount and date. Category is not part of the identity: two records that
// differ only in category share one remote document. That is observed
// behavior of the system this engine reconciles with and must not change,
// since any change to the derivation orphans every previously written
// remote document.
package identity

import (
	"strconv"
	"strings"

	"github.com/carson-networks/expense-sync/internal/expense"
)

// FormatAmount renders an amount the way the rest of the system renders
// it: shortest decimal form that round-trips, with a ".0" suffix on
// integral values ("12.5", "1500.0"). Very large or small magnitudes fall
// into exponent form. Every identity ever derived depends on this exact
// rendering.
func FormatAmount(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") { // skip exponent forms, NaN, Inf
		s += ".0"
	}
	return s
}

// Sanitize replaces every character outside [A-Za-z0-9] with an
// underscore.
func Sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r
		case r >= 'A' && r <= 'Z':
			return r
		case r >= '0' && r <= '9':
			return r
		}
		return '_'
	}, s)
}

// Derive computes the remote document identity for an expense. Pure and
// total: empty title or date simply sanitize to underscore segments.
func Derive(e *expense.Expense) string {
	return Sanitize(e.Title + "_" + FormatAmount(e.Amount) + "_" + e.Date)
}

// ExpenseNamespace returns the remote namespace holding a user's expense
// documents.
func ExpenseNamespace(userID string) string {
	return "users/" + userID + "/expenses"
}

// ExpenseKey returns the full remote key for an expense identity under a
// user's namespace.
func ExpenseKey(userID, id string) string {
	return ExpenseNamespace(userID) + "/" + id
}

// BudgetKey returns the remote key of the user's budget profile document.
func BudgetKey(userID string) string {
	return "users/" + userID + "/profile/budget"
}

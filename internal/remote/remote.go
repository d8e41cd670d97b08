// Package remote is the per-user remote document store. Documents are
// addressed by key paths of the form users/{user}/expenses/{identity} and
// users/{user}/profile/budget and scoped to a namespace (the key path
// minus its last segment) for listing.
package remote

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
)

// Document field names of an expense document.
const (
	FieldTitle    = "title"
	FieldAmount   = "amount"
	FieldDate     = "date"
	FieldCategory = "category"
	FieldImageURL = "imageUrl"

	// FieldMonthlyBudget lives in the profile/budget document.
	FieldMonthlyBudget = "monthly_budget"
)

// Store defines the remote document store operations the sync engine
// consumes. Get returns (nil, nil) when no document exists at the key.
// Documents are untyped maps so a reader can tell a missing field from a
// zero value.
type Store interface {
	Get(ctx context.Context, key string) (bson.M, error)
	Set(ctx context.Context, key string, doc bson.M) error
	Delete(ctx context.Context, key string) error
	ListAll(ctx context.Context, namespace string) ([]bson.M, error)
}

// Number coerces the numeric types the BSON decoder can hand back for a
// document field. Returns false for a missing or non-numeric value.
func Number(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

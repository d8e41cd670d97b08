package storage

import (
	"context"
	"database/sql"
	"errors"
)

// IPreferenceTable defines the interface for the scalar per-user
// preference store. GetFloat returns def when the preference has never
// been written.
type IPreferenceTable interface {
	GetFloat(ctx context.Context, userID, name string, def float64) (float64, error)
	SetFloat(ctx context.Context, userID, name string, value float64) error
}

// Preference names in use.
const (
	PrefMonthlyBudget     = "monthly_budget"
	PrefLastNotifiedSpent = "last_notified_spent"
)

var _ IPreferenceTable = (*PreferencesTable)(nil)

type PreferencesTable struct {
	db *sql.DB
}

func NewPreferencesTable(db *sql.DB) *PreferencesTable {
	return &PreferencesTable{db: db}
}

func (t *PreferencesTable) GetFloat(ctx context.Context, userID, name string, def float64) (float64, error) {
	var value float64
	err := t.db.QueryRowContext(ctx,
		`SELECT value FROM preferences WHERE user_id = ? AND name = ?`,
		userID, name,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return def, nil
	}
	if err != nil {
		return 0, err
	}
	return value, nil
}

func (t *PreferencesTable) SetFloat(ctx context.Context, userID, name string, value float64) error {
	_, err := t.db.ExecContext(ctx,
		`INSERT INTO preferences (user_id, name, value) VALUES (?, ?, ?)
		 ON CONFLICT (user_id, name) DO UPDATE SET value = excluded.value`,
		userID, name, value,
	)
	return err
}

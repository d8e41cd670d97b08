package storage

import (
	"context"
	"database/sql"

	"github.com/carson-networks/expense-sync/internal/expense"
)

// IExpenseTable defines the interface for expense storage operations.
// Update and delete match rows by field equality, not by id: the caller
// side of this boundary has no stable identifier for a row. Both return
// the number of affected rows so ambiguous matches (zero or several rows
// sharing the same four fields) are visible rather than silent.
type IExpenseTable interface {
	Insert(ctx context.Context, e *expense.Expense) (int64, error)
	ListAll(ctx context.Context) ([]*expense.Expense, error)
	UpdateByFields(ctx context.Context, old expense.Fields, updated *expense.Expense) (int64, error)
	DeleteByFields(ctx context.Context, fields expense.Fields) (int64, error)
}

var _ IExpenseTable = (*ExpensesTable)(nil)

type ExpensesTable struct {
	db *sql.DB
}

func NewExpensesTable(db *sql.DB) *ExpensesTable {
	return &ExpensesTable{db: db}
}

// Insert creates a new expense row and returns its generated id. The id
// never leaves the local store's scope.
func (t *ExpensesTable) Insert(ctx context.Context, e *expense.Expense) (int64, error) {
	res, err := t.db.ExecContext(ctx,
		`INSERT INTO expenses (title, amount, date, category, imageUrl) VALUES (?, ?, ?, ?, ?)`,
		e.Title, e.Amount, e.Date, e.Category, nullableString(e.ImageURL),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListAll returns every expense ordered by date descending.
func (t *ExpensesTable) ListAll(ctx context.Context) ([]*expense.Expense, error) {
	rows, err := t.db.QueryContext(ctx,
		`SELECT title, amount, date, category, imageUrl FROM expenses ORDER BY date DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*expense.Expense
	for rows.Next() {
		var e expense.Expense
		var imageURL sql.NullString
		if err := rows.Scan(&e.Title, &e.Amount, &e.Date, &e.Category, &imageURL); err != nil {
			return nil, err
		}
		e.ImageURL = imageURL.String
		result = append(result, &e)
	}
	return result, rows.Err()
}

// UpdateByFields overwrites every row matching old with updated's fields
// and returns the affected row count.
func (t *ExpensesTable) UpdateByFields(ctx context.Context, old expense.Fields, updated *expense.Expense) (int64, error) {
	res, err := t.db.ExecContext(ctx,
		`UPDATE expenses SET title = ?, amount = ?, date = ?, category = ?, imageUrl = ?
		 WHERE title = ? AND amount = ? AND date = ? AND category = ?`,
		updated.Title, updated.Amount, updated.Date, updated.Category, nullableString(updated.ImageURL),
		old.Title, old.Amount, old.Date, old.Category,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// DeleteByFields removes every row matching fields and returns the
// affected row count.
func (t *ExpensesTable) DeleteByFields(ctx context.Context, fields expense.Fields) (int64, error) {
	res, err := t.db.ExecContext(ctx,
		`DELETE FROM expenses WHERE title = ? AND amount = ? AND date = ? AND category = ?`,
		fields.Title, fields.Amount, fields.Date, fields.Category,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

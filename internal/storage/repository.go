// Package storage implements the record store ports on SQLite. All rows are
// scoped by user_id; a query that matches no row owned by the caller reports
// store.ErrNotFound without revealing whether the record exists at all.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"smartpenny/internal/core"
	"smartpenny/internal/store"

	_ "modernc.org/sqlite"
)

const dateLayout = "2006-01-02"

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *SQLiteRepository) FindBudget(ctx context.Context, userID string, period core.PeriodType) (*core.Budget, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT category, limit_cents FROM budget_limits
		 WHERE user_id = ? AND period_type = ?`,
		userID, string(period))
	if err != nil {
		return nil, fmt.Errorf("query budget limits: %w", err)
	}
	defer rows.Close()

	limits := make(map[string]core.Money)
	for rows.Next() {
		var category string
		var cents int64
		if err := rows.Scan(&category, &cents); err != nil {
			return nil, fmt.Errorf("scan budget limit: %w", err)
		}
		limits[category] = core.Money{Cents: cents}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate budget limits: %w", err)
	}
	if len(limits) == 0 {
		return nil, nil
	}
	return &core.Budget{Period: period, Limits: limits}, nil
}

// UpsertBudget replaces the user's limits for the period inside one
// transaction, so readers never observe a mix of old and new categories.
func (r *SQLiteRepository) UpsertBudget(ctx context.Context, userID string, b core.Budget) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin upsert budget: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`DELETE FROM budget_limits WHERE user_id = ? AND period_type = ?`,
		userID, string(b.Period))
	if err != nil {
		return fmt.Errorf("clear budget limits: %w", err)
	}

	for category, limit := range b.Limits {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO budget_limits (user_id, period_type, category, limit_cents)
			 VALUES (?, ?, ?, ?)`,
			userID, string(b.Period), category, limit.Cents)
		if err != nil {
			return fmt.Errorf("insert budget limit %q: %w", category, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert budget: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) ListTransactions(ctx context.Context, userID string, window *core.Window) ([]core.Transaction, error) {
	query := `SELECT id, amount_cents, kind, category, occurred_on FROM transactions
		 WHERE user_id = ?`
	args := []any{userID}
	if window != nil {
		query += ` AND occurred_on >= ? AND occurred_on <= ?`
		args = append(args, window.Start.Format(dateLayout), window.End.Format(dateLayout))
	}
	query += ` ORDER BY occurred_on DESC, id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return out, nil
}

func (r *SQLiteRepository) InsertTransaction(ctx context.Context, userID string, t core.Transaction) (core.Transaction, error) {
	t.ID = uuid.NewString()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions (id, user_id, amount_cents, kind, category, occurred_on)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		t.ID, userID, t.Amount.Cents, string(t.Kind), t.Category, t.OccurredOn.String())
	if err != nil {
		return core.Transaction{}, fmt.Errorf("insert transaction: %w", err)
	}
	return t, nil
}

func (r *SQLiteRepository) UpdateTransaction(ctx context.Context, userID string, t core.Transaction) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE transactions SET amount_cents = ?, kind = ?, category = ?, occurred_on = ?
		 WHERE id = ? AND user_id = ?`,
		t.Amount.Cents, string(t.Kind), t.Category, t.OccurredOn.String(), t.ID, userID)
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	return requireRow(res)
}

func (r *SQLiteRepository) DeleteTransaction(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM transactions WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return requireRow(res)
}

func (r *SQLiteRepository) ListGoals(ctx context.Context, userID string) ([]core.Goal, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, target_cents, current_cents, target_date, category FROM goals
		 WHERE user_id = ? ORDER BY name, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("query goals: %w", err)
	}
	defer rows.Close()

	var out []core.Goal
	for rows.Next() {
		var g core.Goal
		var targetDate sql.NullString
		var category string
		if err := rows.Scan(&g.ID, &g.Name, &g.TargetAmount.Cents, &g.CurrentAmount.Cents, &targetDate, &category); err != nil {
			return nil, fmt.Errorf("scan goal: %w", err)
		}
		g.Category = core.GoalCategory(category)
		if targetDate.Valid {
			d, err := parseDate(targetDate.String)
			if err != nil {
				return nil, fmt.Errorf("goal %s: %w", g.ID, err)
			}
			g.TargetDate = d
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate goals: %w", err)
	}
	return out, nil
}

func (r *SQLiteRepository) CreateGoal(ctx context.Context, userID string, g core.Goal) (core.Goal, error) {
	g.ID = uuid.NewString()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO goals (id, user_id, name, target_cents, current_cents, target_date, category)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		g.ID, userID, g.Name, g.TargetAmount.Cents, g.CurrentAmount.Cents, nullableDate(g.TargetDate), string(g.Category))
	if err != nil {
		return core.Goal{}, fmt.Errorf("insert goal: %w", err)
	}
	return g, nil
}

func (r *SQLiteRepository) UpdateGoal(ctx context.Context, userID string, g core.Goal) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE goals SET name = ?, target_cents = ?, current_cents = ?, target_date = ?, category = ?
		 WHERE id = ? AND user_id = ?`,
		g.Name, g.TargetAmount.Cents, g.CurrentAmount.Cents, nullableDate(g.TargetDate), string(g.Category), g.ID, userID)
	if err != nil {
		return fmt.Errorf("update goal: %w", err)
	}
	return requireRow(res)
}

func (r *SQLiteRepository) DeleteGoal(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM goals WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}
	return requireRow(res)
}

func (r *SQLiteRepository) ListRecurring(ctx context.Context, userID string) ([]core.RecurringExpense, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, amount_cents, due_day, frequency, category, next_due_date, is_paid
		 FROM recurring_expenses WHERE user_id = ? ORDER BY next_due_date, name`, userID)
	if err != nil {
		return nil, fmt.Errorf("query recurring expenses: %w", err)
	}
	defer rows.Close()

	var out []core.RecurringExpense
	for rows.Next() {
		re, err := scanRecurring(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, re)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recurring expenses: %w", err)
	}
	return out, nil
}

func (r *SQLiteRepository) GetRecurring(ctx context.Context, userID, id string) (core.RecurringExpense, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, amount_cents, due_day, frequency, category, next_due_date, is_paid
		 FROM recurring_expenses WHERE id = ? AND user_id = ?`, id, userID)
	re, err := scanRecurring(row)
	if err == sql.ErrNoRows {
		return core.RecurringExpense{}, store.ErrNotFound
	}
	if err != nil {
		return core.RecurringExpense{}, err
	}
	return re, nil
}

func (r *SQLiteRepository) CreateRecurring(ctx context.Context, userID string, re core.RecurringExpense) (core.RecurringExpense, error) {
	re.ID = uuid.NewString()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO recurring_expenses (id, user_id, name, amount_cents, due_day, frequency, category, next_due_date, is_paid)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		re.ID, userID, re.Name, re.Amount.Cents, re.DueDay, string(re.Frequency), re.Category, re.NextDueDate.String(), boolInt(re.IsPaid))
	if err != nil {
		return core.RecurringExpense{}, fmt.Errorf("insert recurring expense: %w", err)
	}
	return re, nil
}

func (r *SQLiteRepository) UpdateRecurring(ctx context.Context, userID string, re core.RecurringExpense) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE recurring_expenses SET name = ?, amount_cents = ?, due_day = ?, frequency = ?, category = ?, next_due_date = ?, is_paid = ?
		 WHERE id = ? AND user_id = ?`,
		re.Name, re.Amount.Cents, re.DueDay, string(re.Frequency), re.Category, re.NextDueDate.String(), boolInt(re.IsPaid), re.ID, userID)
	if err != nil {
		return fmt.Errorf("update recurring expense: %w", err)
	}
	return requireRow(res)
}

func (r *SQLiteRepository) DeleteRecurring(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM recurring_expenses WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete recurring expense: %w", err)
	}
	return requireRow(res)
}

func (r *SQLiteRepository) ListDeals(ctx context.Context, category string) ([]core.Deal, error) {
	query := `SELECT id, name, description, category, distance, hours, rating, is_sponsored
		 FROM deals`
	var args []any
	if category != "" {
		query += ` WHERE category = ?`
		args = append(args, category)
	}
	query += ` ORDER BY is_sponsored DESC, rating DESC, name`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query deals: %w", err)
	}
	defer rows.Close()

	var out []core.Deal
	for rows.Next() {
		var d core.Deal
		var sponsored int
		if err := rows.Scan(&d.ID, &d.Name, &d.Description, &d.Category, &d.Distance, &d.Hours, &d.Rating, &sponsored); err != nil {
			return nil, fmt.Errorf("scan deal: %w", err)
		}
		d.IsSponsored = sponsored != 0
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate deals: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (core.Transaction, error) {
	var t core.Transaction
	var kind, occurredOn string
	if err := row.Scan(&t.ID, &t.Amount.Cents, &kind, &t.Category, &occurredOn); err != nil {
		return core.Transaction{}, fmt.Errorf("scan transaction: %w", err)
	}
	t.Kind = core.TransactionKind(kind)
	d, err := parseDate(occurredOn)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("transaction %s: %w", t.ID, err)
	}
	t.OccurredOn = d
	return t, nil
}

func scanRecurring(row rowScanner) (core.RecurringExpense, error) {
	var re core.RecurringExpense
	var frequency, nextDue string
	var isPaid int
	err := row.Scan(&re.ID, &re.Name, &re.Amount.Cents, &re.DueDay, &frequency, &re.Category, &nextDue, &isPaid)
	if err == sql.ErrNoRows {
		return core.RecurringExpense{}, err
	}
	if err != nil {
		return core.RecurringExpense{}, fmt.Errorf("scan recurring expense: %w", err)
	}
	re.Frequency = core.Frequency(frequency)
	re.IsPaid = isPaid != 0
	d, err := parseDate(nextDue)
	if err != nil {
		return core.RecurringExpense{}, fmt.Errorf("recurring expense %s: %w", re.ID, err)
	}
	re.NextDueDate = d
	return re, nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func parseDate(s string) (core.Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return core.Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return core.DateOf(t), nil
}

func nullableDate(d core.Date) any {
	if d.IsEmpty() {
		return nil
	}
	return d.String()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

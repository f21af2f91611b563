// Package storage provides the SQLite and in-memory implementations of
// the ledger store.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"uangku/internal/core"
	"uangku/internal/ledger"

	_ "modernc.org/sqlite"
)

// SQLiteRepository persists ledger records in a local SQLite database.
// Balances are never stored; only the raw record streams are.
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

func (r *SQLiteRepository) CreateAccount(ctx context.Context, a core.Account) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO accounts (id, user_id, name, type, role, opening_balance_cents, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.UserID, a.Name, string(a.Type), string(a.Role), a.OpeningBalance.Cents, a.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetAccount(ctx context.Context, userID, id string) (core.Account, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, name, type, role, opening_balance_cents, created_at
		FROM accounts WHERE user_id = ? AND id = ?`, userID, id)
	return scanAccount(row)
}

func (r *SQLiteRepository) ListAccounts(ctx context.Context, userID string) ([]core.Account, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, name, type, role, opening_balance_cents, created_at
		FROM accounts WHERE user_id = ? ORDER BY created_at ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	var out []core.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) UpdateAccount(ctx context.Context, userID, id string, upd ledger.AccountUpdate) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE accounts SET name = ?, type = ?, role = ?
		WHERE user_id = ? AND id = ?`,
		upd.Name, string(upd.Type), string(upd.Role), userID, id)
	if err != nil {
		return fmt.Errorf("update account: %w", err)
	}
	return requireRow(res)
}

func (r *SQLiteRepository) DeleteAccount(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM accounts WHERE user_id = ? AND id = ?`, userID, id)
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	return requireRow(res)
}

func (r *SQLiteRepository) CreateTransaction(ctx context.Context, t core.Transaction) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO transactions (id, user_id, date, amount_cents, type, account_id, category, note, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.UserID, t.Date, t.Amount.Cents, string(t.Type), t.AccountID, t.Category, nullable(t.Note), t.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetTransaction(ctx context.Context, userID, id string) (core.Transaction, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, date, amount_cents, type, account_id, category, note, created_at
		FROM transactions WHERE user_id = ? AND id = ?`, userID, id)
	return scanTransaction(row)
}

func (r *SQLiteRepository) ListTransactions(ctx context.Context, userID string) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, date, amount_cents, type, account_id, category, note, created_at
		FROM transactions WHERE user_id = ?
		ORDER BY date DESC, created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
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
	return out, rows.Err()
}

func (r *SQLiteRepository) UpdateTransaction(ctx context.Context, userID, id string, upd ledger.TransactionUpdate) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE transactions SET date = ?, amount_cents = ?, type = ?, account_id = ?, category = ?, note = ?
		WHERE user_id = ? AND id = ?`,
		upd.Date, upd.Amount.Cents, string(upd.Type), upd.AccountID, upd.Category, nullable(upd.Note), userID, id)
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	return requireRow(res)
}

func (r *SQLiteRepository) DeleteTransaction(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM transactions WHERE user_id = ? AND id = ?`, userID, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return requireRow(res)
}

func (r *SQLiteRepository) CreateTransfer(ctx context.Context, tr core.Transfer) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO transfers (id, user_id, date, amount_cents, admin_fee_cents, from_account_id, to_account_id, note, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		tr.ID, tr.UserID, tr.Date, tr.Amount.Cents, tr.AdminFee.Cents, tr.FromAccountID, tr.ToAccountID, nullable(tr.Note), tr.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert transfer: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) ListTransfers(ctx context.Context, userID string) ([]core.Transfer, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, date, amount_cents, admin_fee_cents, from_account_id, to_account_id, note, created_at
		FROM transfers WHERE user_id = ?
		ORDER BY date DESC, created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	defer rows.Close()

	var out []core.Transfer
	for rows.Next() {
		tr, err := scanTransfer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, tr)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) DeleteTransfer(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM transfers WHERE user_id = ? AND id = ?`, userID, id)
	if err != nil {
		return fmt.Errorf("delete transfer: %w", err)
	}
	return requireRow(res)
}

func (r *SQLiteRepository) ListUserIDs(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT DISTINCT user_id FROM transactions
		UNION SELECT DISTINCT user_id FROM transfers`)
	if err != nil {
		return nil, fmt.Errorf("list user ids: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan user id: %w", err)
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (core.Account, error) {
	var (
		a         core.Account
		typ, role string
		createdAt time.Time
	)
	err := row.Scan(&a.ID, &a.UserID, &a.Name, &typ, &role, &a.OpeningBalance.Cents, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Account{}, ledger.ErrNotFound
	}
	if err != nil {
		return core.Account{}, fmt.Errorf("scan account: %w", err)
	}
	a.Type = core.AccountType(typ)
	a.Role = core.AccountRole(role)
	a.CreatedAt = createdAt
	return a, nil
}

func scanTransaction(row rowScanner) (core.Transaction, error) {
	var (
		t         core.Transaction
		typ       string
		note      sql.NullString
		createdAt time.Time
	)
	err := row.Scan(&t.ID, &t.UserID, &t.Date, &t.Amount.Cents, &typ, &t.AccountID, &t.Category, &note, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, ledger.ErrNotFound
	}
	if err != nil {
		return core.Transaction{}, fmt.Errorf("scan transaction: %w", err)
	}
	t.Type = core.TransactionType(typ)
	t.Note = note.String
	t.CreatedAt = createdAt
	return t, nil
}

func scanTransfer(row rowScanner) (core.Transfer, error) {
	var (
		tr        core.Transfer
		fee       sql.NullInt64
		note      sql.NullString
		createdAt time.Time
	)
	err := row.Scan(&tr.ID, &tr.UserID, &tr.Date, &tr.Amount.Cents, &fee, &tr.FromAccountID, &tr.ToAccountID, &note, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transfer{}, ledger.ErrNotFound
	}
	if err != nil {
		return core.Transfer{}, fmt.Errorf("scan transfer: %w", err)
	}
	// A NULL admin fee reads as zero.
	tr.AdminFee = core.Money{Cents: fee.Int64}
	tr.Note = note.String
	tr.CreatedAt = createdAt
	return tr, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ledger.ErrNotFound
	}
	return nil
}

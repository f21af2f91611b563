// Package ledger orchestrates the user's ledger: it loads record
// snapshots from a store, runs the pure balance and statement
// computations over them, enforces lifecycle guards, and emits change
// events for the export worker.
package ledger

import (
	"context"
	"errors"

	"uangku/internal/core"
)

var (
	// ErrNotFound is returned when a record does not exist for the user.
	ErrNotFound = errors.New("record not found")
	// ErrAccountNotEmpty refuses account deletion while the computed
	// balance is non-zero.
	ErrAccountNotEmpty = errors.New("account balance must be zero before deletion")
)

// AccountUpdate carries the mutable account attributes. The opening
// balance is deliberately absent: it is an immutable baseline.
type AccountUpdate struct {
	Name string
	Type core.AccountType
	Role core.AccountRole
}

// TransactionUpdate carries the editable transaction fields.
type TransactionUpdate struct {
	Date      string
	Amount    core.Money
	Type      core.TransactionType
	AccountID string
	Category  string
	Note      string
}

// Store is the persistence port. Every operation is scoped to one user;
// implementations must never return another user's rows.
type Store interface {
	CreateAccount(ctx context.Context, a core.Account) error
	GetAccount(ctx context.Context, userID, id string) (core.Account, error)
	ListAccounts(ctx context.Context, userID string) ([]core.Account, error)
	UpdateAccount(ctx context.Context, userID, id string, upd AccountUpdate) error
	DeleteAccount(ctx context.Context, userID, id string) error

	CreateTransaction(ctx context.Context, t core.Transaction) error
	GetTransaction(ctx context.Context, userID, id string) (core.Transaction, error)
	ListTransactions(ctx context.Context, userID string) ([]core.Transaction, error)
	UpdateTransaction(ctx context.Context, userID, id string, upd TransactionUpdate) error
	DeleteTransaction(ctx context.Context, userID, id string) error

	CreateTransfer(ctx context.Context, tr core.Transfer) error
	ListTransfers(ctx context.Context, userID string) ([]core.Transfer, error)
	DeleteTransfer(ctx context.Context, userID, id string) error

	// ListUserIDs returns every user with at least one record, for the
	// worker's periodic catch-up export.
	ListUserIDs(ctx context.Context) ([]string, error)

	Close() error
}

// Publisher emits ledger change events. Implementations are best-effort;
// the service never fails a local write because publishing failed.
type Publisher interface {
	PublishLedgerChange(ctx context.Context, userID, month, kind string) error
}

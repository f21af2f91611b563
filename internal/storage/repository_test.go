package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"uangku/internal/core"
	"uangku/internal/ledger"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestAccountRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	a := core.Account{
		ID: "acc1", UserID: "u1", Name: "BCA", Type: core.Bank, Role: core.Spend,
		OpeningBalance: core.Money{Cents: 100_000},
		CreatedAt:      time.Now().UTC().Truncate(time.Second),
	}
	if err := repo.CreateAccount(ctx, a); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.GetAccount(ctx, "u1", "acc1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "BCA" || got.Type != core.Bank || got.OpeningBalance.Cents != 100_000 {
		t.Fatalf("got %+v", got)
	}

	if err := repo.UpdateAccount(ctx, "u1", "acc1", ledger.AccountUpdate{Name: "BCA Main", Type: core.Bank, Role: core.Savings}); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, _ = repo.GetAccount(ctx, "u1", "acc1")
	if got.Name != "BCA Main" || got.Role != core.Savings {
		t.Fatalf("update not applied: %+v", got)
	}
	// Opening balance stays untouched by updates.
	if got.OpeningBalance.Cents != 100_000 {
		t.Fatalf("opening balance changed to %d", got.OpeningBalance.Cents)
	}

	if err := repo.DeleteAccount(ctx, "u1", "acc1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.GetAccount(ctx, "u1", "acc1"); !errors.Is(err, ledger.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestUserScoping(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	a := core.Account{ID: "acc1", UserID: "u1", Name: "x", Type: core.Cash, Role: core.Spend, CreatedAt: time.Now()}
	if err := repo.CreateAccount(ctx, a); err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := repo.GetAccount(ctx, "u2", "acc1"); !errors.Is(err, ledger.ErrNotFound) {
		t.Fatalf("other user should not see the account, got %v", err)
	}
	if err := repo.DeleteAccount(ctx, "u2", "acc1"); !errors.Is(err, ledger.ErrNotFound) {
		t.Fatalf("other user should not delete the account, got %v", err)
	}
	accounts, err := repo.ListAccounts(ctx, "u2")
	if err != nil || len(accounts) != 0 {
		t.Fatalf("other user list = %v, %v", accounts, err)
	}
}

func TestTransactionOrdering(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	base := time.Now().UTC().Truncate(time.Second)

	// Same date, different insertion order: newest insertion first.
	txns := []core.Transaction{
		{ID: "t1", UserID: "u1", Date: "2024-02-10", Amount: core.Money{Cents: 1}, Type: core.Income, AccountID: "a", Category: "c", CreatedAt: base},
		{ID: "t2", UserID: "u1", Date: "2024-02-10", Amount: core.Money{Cents: 2}, Type: core.Income, AccountID: "a", Category: "c", CreatedAt: base.Add(time.Second)},
		{ID: "t3", UserID: "u1", Date: "2024-02-20", Amount: core.Money{Cents: 3}, Type: core.Income, AccountID: "a", Category: "c", CreatedAt: base},
	}
	for _, tx := range txns {
		if err := repo.CreateTransaction(ctx, tx); err != nil {
			t.Fatalf("create %s: %v", tx.ID, err)
		}
	}

	got, err := repo.ListTransactions(ctx, "u1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 3 || got[0].ID != "t3" || got[1].ID != "t2" || got[2].ID != "t1" {
		ids := make([]string, len(got))
		for i, tx := range got {
			ids[i] = tx.ID
		}
		t.Fatalf("order = %v, want [t3 t2 t1]", ids)
	}
}

func TestTransferNullFee(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	tr := core.Transfer{
		ID: "tr1", UserID: "u1", Date: "2024-02-15",
		Amount:        core.Money{Cents: 10_000},
		FromAccountID: "a", ToAccountID: "b",
		CreatedAt: time.Now(),
	}
	if err := repo.CreateTransfer(ctx, tr); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.ListTransfers(ctx, "u1")
	if err != nil || len(got) != 1 {
		t.Fatalf("list = %v, %v", got, err)
	}
	if got[0].AdminFee.Cents != 0 {
		t.Fatalf("missing fee should read as zero, got %d", got[0].AdminFee.Cents)
	}
	if got[0].Note != "" {
		t.Fatalf("missing note should read as empty, got %q", got[0].Note)
	}
}

func TestListUserIDs(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_ = repo.CreateTransaction(ctx, core.Transaction{ID: "t1", UserID: "u1", Date: "2024-01-01", Type: core.Income, Amount: core.Money{Cents: 1}, AccountID: "a", Category: "c", CreatedAt: time.Now()})
	_ = repo.CreateTransfer(ctx, core.Transfer{ID: "tr1", UserID: "u2", Date: "2024-01-01", Amount: core.Money{Cents: 1}, FromAccountID: "a", ToAccountID: "b", CreatedAt: time.Now()})

	ids, err := repo.ListUserIDs(ctx)
	if err != nil {
		t.Fatalf("list user ids: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("ids = %v, want two users", ids)
	}
}

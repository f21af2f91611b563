package core

import (
	"testing"
	"time"
)

func TestBuildActivityOrdering(t *testing.T) {
	base := time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)
	txns := []Transaction{
		{ID: "t1", AccountID: "a", Type: Income, Amount: Money{Cents: 100}, Date: "2024-02-01", CreatedAt: base},
	}
	trs := []Transfer{
		{ID: "tr1", FromAccountID: "a", ToAccountID: "b", Amount: Money{Cents: 50}, Date: "2024-01-31", CreatedAt: base.Add(time.Hour)},
	}

	feed := BuildActivity(txns, trs)
	if len(feed) != 3 {
		t.Fatalf("expected 3 entries (1 txn + 2 transfer legs), got %d", len(feed))
	}
	// The transfer was inserted later, so both of its legs sort first even
	// though its nominal date is earlier.
	if feed[0].Kind != ActivityTransferOut || feed[1].Kind != ActivityTransferIn {
		t.Fatalf("expected transfer legs first, got %s, %s", feed[0].Kind, feed[1].Kind)
	}
	if feed[2].Kind != ActivityTransaction {
		t.Fatalf("expected transaction last, got %s", feed[2].Kind)
	}
}

func TestActivityAmountSigns(t *testing.T) {
	tr := Transfer{ID: "tr1", FromAccountID: "a", ToAccountID: "b", Amount: Money{Cents: 500}, AdminFee: Money{Cents: 25}}
	out := Activity{Kind: ActivityTransferOut, Transfer: &tr}
	in := Activity{Kind: ActivityTransferIn, Transfer: &tr}

	if got := out.Amount().Cents; got != -525 {
		t.Fatalf("outgoing leg amount %d, want -525 (amount+fee)", got)
	}
	if got := in.Amount().Cents; got != 500 {
		t.Fatalf("incoming leg amount %d, want 500", got)
	}

	exp := Transaction{ID: "t1", AccountID: "a", Type: Expense, Amount: Money{Cents: 300}}
	if got := (Activity{Kind: ActivityTransaction, Transaction: &exp}).Amount().Cents; got != -300 {
		t.Fatalf("expense amount %d, want -300", got)
	}
}

func TestFilterActivity(t *testing.T) {
	txns := []Transaction{
		{ID: "t1", AccountID: "a", Type: Income, Amount: Money{Cents: 1}, Date: "2024-02-10"},
		{ID: "t2", AccountID: "b", Type: Income, Amount: Money{Cents: 1}, Date: "2024-02-11"},
		{ID: "t3", AccountID: "a", Type: Income, Amount: Money{Cents: 1}, Date: "2024-03-01"},
	}
	trs := []Transfer{
		{ID: "tr1", FromAccountID: "a", ToAccountID: "c", Amount: Money{Cents: 1}, Date: "2024-02-20"},
	}
	feed := BuildActivity(txns, trs)

	byMonth := FilterActivity(feed, "2024-02", "")
	if len(byMonth) != 4 {
		t.Fatalf("month filter: got %d entries, want 4", len(byMonth))
	}

	// Transfers match on either side.
	byAccount := FilterActivity(feed, "2024-02", "a")
	if len(byAccount) != 3 {
		t.Fatalf("account filter: got %d entries, want 3 (t1 + both tr1 legs)", len(byAccount))
	}
	for _, a := range byAccount {
		if !a.Touches("a") {
			t.Fatalf("filtered entry does not touch account a: %+v", a)
		}
	}
}

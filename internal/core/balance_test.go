package core

import (
	"testing"
)

func acct(id string, opening int64) Account {
	return Account{ID: id, UserID: "u1", Name: id, Type: Bank, Role: Spend, OpeningBalance: Money{Cents: opening}}
}

func TestAccountBalanceNoActivity(t *testing.T) {
	cases := []struct {
		opening int64
	}{
		{0},
		{100_000},
		{-5_000}, // negative opening balance is accepted
	}
	for i, tc := range cases {
		got := AccountBalance(acct("a", tc.opening), nil, nil)
		if got.Cents != tc.opening {
			t.Fatalf("case %d: got %d, want opening balance %d", i, got.Cents, tc.opening)
		}
	}
}

func TestAccountBalanceAdditivity(t *testing.T) {
	a := acct("a", 1_000)
	base := AccountBalance(a, nil, nil)

	withIncome := AccountBalance(a, []Transaction{
		{ID: "t1", AccountID: "a", Type: Income, Amount: Money{Cents: 250}, Date: "2024-02-01"},
	}, nil)
	if withIncome.Cents-base.Cents != 250 {
		t.Fatalf("income of 250 moved balance by %d", withIncome.Cents-base.Cents)
	}

	withExpense := AccountBalance(a, []Transaction{
		{ID: "t2", AccountID: "a", Type: Expense, Amount: Money{Cents: 250}, Date: "2024-02-01"},
	}, nil)
	if withExpense.Cents-base.Cents != -250 {
		t.Fatalf("expense of 250 moved balance by %d", withExpense.Cents-base.Cents)
	}
}

func TestAccountBalanceTransferAsymmetry(t *testing.T) {
	src := acct("src", 0)
	dst := acct("dst", 0)
	trs := []Transfer{{
		ID: "tr1", Date: "2024-02-15",
		Amount: Money{Cents: 10_000}, AdminFee: Money{Cents: 1_000},
		FromAccountID: "src", ToAccountID: "dst",
	}}

	s := AccountBalance(src, nil, trs)
	d := AccountBalance(dst, nil, trs)
	if d.Cents != 10_000 {
		t.Fatalf("destination gained %d, want full amount 10000", d.Cents)
	}
	if s.Cents != -11_000 {
		t.Fatalf("source lost %d, want amount+fee 11000", -s.Cents)
	}
	// The fee is destroyed, not moved: the deltas sum to -fee.
	if s.Cents+d.Cents != -1_000 {
		t.Fatalf("combined delta %d, want -1000", s.Cents+d.Cents)
	}
}

func TestAccountBalanceMissingFeeIsZero(t *testing.T) {
	dst := acct("dst", 0)
	src := acct("src", 0)
	trs := []Transfer{{ID: "tr1", Date: "2024-03-01", Amount: Money{Cents: 500}, FromAccountID: "src", ToAccountID: "dst"}}
	if got := AccountBalance(src, nil, trs); got.Cents != -500 {
		t.Fatalf("source delta %d, want -500 with zero fee", got.Cents)
	}
	if got := AccountBalance(dst, nil, trs); got.Cents != 500 {
		t.Fatalf("destination delta %d, want 500", got.Cents)
	}
}

func TestAccountBalanceIgnoresOtherAccounts(t *testing.T) {
	a := acct("a", 100)
	txns := []Transaction{
		{ID: "t1", AccountID: "other", Type: Income, Amount: Money{Cents: 999}, Date: "2024-01-01"},
		{ID: "t2", AccountID: "orphaned", Type: Expense, Amount: Money{Cents: 999}, Date: "2024-01-02"},
	}
	trs := []Transfer{
		{ID: "tr1", FromAccountID: "x", ToAccountID: "y", Amount: Money{Cents: 999}, Date: "2024-01-03"},
	}
	if got := AccountBalance(a, txns, trs); got.Cents != 100 {
		t.Fatalf("unrelated rows changed balance: got %d, want 100", got.Cents)
	}
}

func TestAccountBalanceCanGoNegative(t *testing.T) {
	a := acct("a", 100)
	txns := []Transaction{{ID: "t1", AccountID: "a", Type: Expense, Amount: Money{Cents: 300}, Date: "2024-01-01"}}
	if got := AccountBalance(a, txns, nil); got.Cents != -200 {
		t.Fatalf("got %d, want -200 (overdraft is accepted)", got.Cents)
	}
}

// Full scenario: opening 100000, income 50000, expense 20000, transfer
// 10000 with fee 1000 out to account b.
func TestAccountBalanceScenario(t *testing.T) {
	a := acct("a", 100_000)
	b := acct("b", 0)
	txns := []Transaction{
		{ID: "t1", AccountID: "a", Type: Income, Amount: Money{Cents: 50_000}, Date: "2024-02-01"},
		{ID: "t2", AccountID: "a", Type: Expense, Amount: Money{Cents: 20_000}, Date: "2024-02-10"},
	}
	trs := []Transfer{{
		ID: "tr1", Date: "2024-02-15",
		Amount: Money{Cents: 10_000}, AdminFee: Money{Cents: 1_000},
		FromAccountID: "a", ToAccountID: "b",
	}}

	if got := AccountBalance(a, txns, trs); got.Cents != 119_000 {
		t.Fatalf("balance(a) = %d, want 119000", got.Cents)
	}
	if got := AccountBalance(b, txns, trs); got.Cents != 10_000 {
		t.Fatalf("balance(b) = %d, want 10000", got.Cents)
	}

	// Pure function: identical inputs, identical outputs.
	again := AccountBalance(a, txns, trs)
	if again.Cents != 119_000 {
		t.Fatalf("second call returned %d, want 119000", again.Cents)
	}
}

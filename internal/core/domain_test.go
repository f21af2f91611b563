package core

import (
	"errors"
	"testing"
)

func TestIsDate(t *testing.T) {
	cases := []struct {
		s  string
		ok bool
	}{
		{"2024-02-15", true},
		{"2024-2-15", false},
		{"2024-02-15T00:00", false},
		{"20240215", false},
		{"", false},
		{"yyyy-mm-dd", false},
	}
	for _, tc := range cases {
		if got := IsDate(tc.s); got != tc.ok {
			t.Fatalf("IsDate(%q) = %v, want %v", tc.s, got, tc.ok)
		}
	}
}

func TestIsMonth(t *testing.T) {
	if !IsMonth("2024-02") {
		t.Fatalf("2024-02 should be a valid month")
	}
	for _, s := range []string{"2024-02-15", "2024", "202402", ""} {
		if IsMonth(s) {
			t.Fatalf("%q should not be a valid month", s)
		}
	}
}

func TestMonthOfDayOf(t *testing.T) {
	if got := MonthOf("2024-02-15"); got != "2024-02" {
		t.Fatalf("MonthOf = %q", got)
	}
	if got := DayOf("2024-02-15"); got != "15" {
		t.Fatalf("DayOf = %q", got)
	}
}

func TestAccountValidate(t *testing.T) {
	good := Account{Name: "BCA", Type: Bank, Role: Spend}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	// Negative opening balance is not an error.
	neg := Account{Name: "BCA", Type: Bank, Role: Spend, OpeningBalance: Money{Cents: -100}}
	if err := neg.Validate(); err != nil {
		t.Fatalf("negative opening balance should validate, got %v", err)
	}

	cases := []struct {
		a    Account
		want error
	}{
		{Account{Name: "  ", Type: Bank, Role: Spend}, ErrEmptyName},
		{Account{Name: "x", Type: "crypto", Role: Spend}, ErrInvalidType},
		{Account{Name: "x", Type: Cash, Role: "pocket"}, ErrInvalidRole},
	}
	for i, tc := range cases {
		if err := tc.a.Validate(); !errors.Is(err, tc.want) {
			t.Fatalf("case %d: got %v, want %v", i, err, tc.want)
		}
	}
}

func TestTransactionValidate(t *testing.T) {
	good := Transaction{Date: "2024-02-15", Amount: Money{Cents: 100}, Type: Expense, AccountID: "a", Category: "food"}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	cases := []struct {
		tx   Transaction
		want error
	}{
		{Transaction{Date: "15/02/2024", Amount: Money{Cents: 1}, Type: Income, AccountID: "a", Category: "c"}, ErrInvalidDate},
		{Transaction{Date: "2024-02-15", Amount: Money{Cents: -1}, Type: Income, AccountID: "a", Category: "c"}, ErrInvalidAmount},
		{Transaction{Date: "2024-02-15", Amount: Money{Cents: 1}, Type: "refund", AccountID: "a", Category: "c"}, ErrInvalidType},
		{Transaction{Date: "2024-02-15", Amount: Money{Cents: 1}, Type: Income, Category: "c"}, ErrMissingAccount},
		{Transaction{Date: "2024-02-15", Amount: Money{Cents: 1}, Type: Income, AccountID: "a"}, ErrEmptyCategory},
	}
	for i, tc := range cases {
		if err := tc.tx.Validate(); !errors.Is(err, tc.want) {
			t.Fatalf("case %d: got %v, want %v", i, err, tc.want)
		}
	}
}

func TestTransferValidate(t *testing.T) {
	good := Transfer{Date: "2024-02-15", Amount: Money{Cents: 100}, FromAccountID: "a", ToAccountID: "b"}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	cases := []struct {
		tr   Transfer
		want error
	}{
		{Transfer{Date: "bad", Amount: Money{Cents: 1}, FromAccountID: "a", ToAccountID: "b"}, ErrInvalidDate},
		{Transfer{Date: "2024-02-15", Amount: Money{Cents: -1}, FromAccountID: "a", ToAccountID: "b"}, ErrInvalidAmount},
		{Transfer{Date: "2024-02-15", Amount: Money{Cents: 1}, AdminFee: Money{Cents: -1}, FromAccountID: "a", ToAccountID: "b"}, ErrNegativeFee},
		{Transfer{Date: "2024-02-15", Amount: Money{Cents: 1}, FromAccountID: "a", ToAccountID: "a"}, ErrSameAccount},
		{Transfer{Date: "2024-02-15", Amount: Money{Cents: 1}, ToAccountID: "b"}, ErrMissingAccount},
	}
	for i, tc := range cases {
		if err := tc.tr.Validate(); !errors.Is(err, tc.want) {
			t.Fatalf("case %d: got %v, want %v", i, err, tc.want)
		}
	}
}

package core

import (
	"reflect"
	"testing"
)

func tx(id, date string, typ TransactionType, cents int64) Transaction {
	return Transaction{ID: id, AccountID: "a", Date: date, Type: typ, Amount: Money{Cents: cents}, Category: "misc"}
}

func TestMonthTotalsEmpty(t *testing.T) {
	got := MonthTotals(nil, "2024-02")
	if got.Income.Cents != 0 || got.Expense.Cents != 0 || got.Net.Cents != 0 {
		t.Fatalf("empty input should produce all-zero totals, got %+v", got)
	}
}

func TestMonthTotalsFilterExactness(t *testing.T) {
	txns := []Transaction{tx("t1", "2024-02-15", Income, 500)}

	if got := MonthTotals(txns, "2024-02"); got.Income.Cents != 500 {
		t.Fatalf("2024-02 filter should include 2024-02-15, got income %d", got.Income.Cents)
	}
	if got := MonthTotals(txns, "2024-03"); got.Income.Cents != 0 {
		t.Fatalf("2024-03 filter should exclude 2024-02-15, got income %d", got.Income.Cents)
	}
}

func TestMonthTotalsNetIdentity(t *testing.T) {
	cases := [][]Transaction{
		nil,
		{tx("t1", "2024-02-01", Income, 50_000)},
		{tx("t1", "2024-02-01", Income, 50_000), tx("t2", "2024-02-10", Expense, 20_000)},
		{tx("t1", "2024-02-01", Expense, 70_000), tx("t2", "2024-02-28", Income, 5)},
	}
	for i, txns := range cases {
		got := MonthTotals(txns, "2024-02")
		if got.Net.Cents != got.Income.Cents-got.Expense.Cents {
			t.Fatalf("case %d: net %d != income %d - expense %d", i, got.Net.Cents, got.Income.Cents, got.Expense.Cents)
		}
	}
}

func TestMonthTotalsScenario(t *testing.T) {
	txns := []Transaction{
		tx("t1", "2024-02-01", Income, 50_000),
		tx("t2", "2024-02-10", Expense, 20_000),
		tx("t3", "2024-03-01", Income, 999),
	}
	got := MonthTotals(txns, "2024-02")
	want := Totals{Income: Money{Cents: 50_000}, Expense: Money{Cents: 20_000}, Net: Money{Cents: 30_000}}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestMonthSeries(t *testing.T) {
	txns := []Transaction{
		tx("t1", "2024-02-01", Income, 300),
		tx("t2", "2024-02-01", Expense, 100),
		tx("t3", "2024-02-10", Expense, 50),
		tx("t4", "2024-03-05", Income, 999), // other month
	}
	got := MonthSeries(txns, "2024-02")

	if want := map[string]int64{"01": 300}; !reflect.DeepEqual(got.Income, want) {
		t.Fatalf("income series %v, want %v", got.Income, want)
	}
	// Expense values are negated.
	if want := map[string]int64{"01": -100, "10": -50}; !reflect.DeepEqual(got.Expense, want) {
		t.Fatalf("expense series %v, want %v", got.Expense, want)
	}
	if want := map[string]int64{"01": 200, "10": -50}; !reflect.DeepEqual(got.Net, want) {
		t.Fatalf("net series %v, want %v", got.Net, want)
	}

	// Days without activity are absent, not zero.
	if _, ok := got.Net["02"]; ok {
		t.Fatalf("day 02 should be absent from the series")
	}
}

func TestMonthSeriesEmptyMonth(t *testing.T) {
	got := MonthSeries([]Transaction{tx("t1", "2024-01-01", Income, 10)}, "2024-02")
	if len(got.Income) != 0 || len(got.Expense) != 0 || len(got.Net) != 0 {
		t.Fatalf("month with no matches should yield empty series, got %+v", got)
	}
}

package export

import (
	"strings"
	"testing"

	"uangku/internal/core"
)

func TestStatementFiltersMonth(t *testing.T) {
	txns := []core.Transaction{
		{ID: "t1", Date: "2024-02-01", Amount: core.Money{Cents: 5_000_000}, Type: core.Income, AccountID: "a", Category: "salary"},
		{ID: "t2", Date: "2024-03-01", Amount: core.Money{Cents: 100}, Type: core.Expense, AccountID: "a", Category: "food"},
	}

	var sb strings.Builder
	if err := Statement(&sb, txns, "2024-02"); err != nil {
		t.Fatalf("render: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want header + 1 row:\n%s", len(lines), sb.String())
	}
	if lines[0] != "id,date,amount,type,account_id,category,note" {
		t.Fatalf("header = %q", lines[0])
	}
	if lines[1] != "t1,2024-02-01,50000.00,income,a,salary," {
		t.Fatalf("row = %q", lines[1])
	}
}

func TestStatementQuoting(t *testing.T) {
	txns := []core.Transaction{
		{ID: "t1", Date: "2024-02-01", Amount: core.Money{Cents: 100}, Type: core.Expense, AccountID: "a",
			Category: "food, drink", Note: `said "hi"`},
	}

	var sb strings.Builder
	if err := Statement(&sb, txns, "2024-02"); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := sb.String()
	if !strings.Contains(out, `"food, drink"`) {
		t.Fatalf("comma field not quoted:\n%s", out)
	}
	if !strings.Contains(out, `"said ""hi"""`) {
		t.Fatalf("quote field not escaped:\n%s", out)
	}
}

func TestAllIncludesTransfersSection(t *testing.T) {
	txns := []core.Transaction{
		{ID: "t1", Date: "2024-02-01", Amount: core.Money{Cents: 100}, Type: core.Income, AccountID: "a", Category: "c"},
	}
	trs := []core.Transfer{
		{ID: "tr1", Date: "2024-02-15", Amount: core.Money{Cents: 10_000}, AdminFee: core.Money{Cents: 1_000},
			FromAccountID: "a", ToAccountID: "b"},
	}

	var sb strings.Builder
	if err := All(&sb, txns, trs); err != nil {
		t.Fatalf("render: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4:\n%s", len(lines), sb.String())
	}
	if lines[2] != "id,date,amount,admin_fee,from_account_id,to_account_id,note" {
		t.Fatalf("transfer header = %q", lines[2])
	}
	if lines[3] != "tr1,2024-02-15,100.00,10.00,a,b," {
		t.Fatalf("transfer row = %q", lines[3])
	}
}

func TestStatementEmpty(t *testing.T) {
	var sb strings.Builder
	if err := Statement(&sb, nil, "2024-02"); err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.TrimSpace(sb.String()) != "id,date,amount,type,account_id,category,note" {
		t.Fatalf("empty statement should be header only, got:\n%s", sb.String())
	}
}

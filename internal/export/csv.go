// Package export renders ledger rows as CSV. The core supplies raw
// records and aggregates; this package only flattens them to text.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"uangku/internal/core"
)

var statementHeader = []string{"id", "date", "amount", "type", "account_id", "category", "note"}

var transferHeader = []string{"id", "date", "amount", "admin_fee", "from_account_id", "to_account_id", "note"}

// Statement writes the transactions of one YYYY-MM month.
func Statement(w io.Writer, txns []core.Transaction, month string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(statementHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, t := range txns {
		if !strings.HasPrefix(t.Date, month) {
			continue
		}
		if err := cw.Write(transactionRow(t)); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// All writes every transaction followed by a transfers section, the
// full-backup format of the data page.
func All(w io.Writer, txns []core.Transaction, trs []core.Transfer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(statementHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, t := range txns {
		if err := cw.Write(transactionRow(t)); err != nil {
			return fmt.Errorf("write transaction row: %w", err)
		}
	}
	if err := cw.Write(transferHeader); err != nil {
		return fmt.Errorf("write transfer header: %w", err)
	}
	for _, tr := range trs {
		row := []string{
			tr.ID, tr.Date, tr.Amount.Decimal(), tr.AdminFee.Decimal(),
			tr.FromAccountID, tr.ToAccountID, tr.Note,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write transfer row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func transactionRow(t core.Transaction) []string {
	return []string{t.ID, t.Date, t.Amount.Decimal(), string(t.Type), t.AccountID, t.Category, t.Note}
}

package core

// AccountBalance derives one account's current balance from its opening
// balance plus the net effect of every transaction and transfer that
// references it. Balance is never stored; this is the single source of
// truth every caller goes through.
//
// Transfers touch two accounts asymmetrically: the destination gains
// Amount, the source loses Amount plus AdminFee. The fee is destroyed,
// not moved. Rows referencing other accounts are simply skipped, so an
// orphaned account id contributes nothing. Overdraft is allowed; the
// result may be negative.
func AccountBalance(a Account, txns []Transaction, trs []Transfer) Money {
	cents := a.OpeningBalance.Cents
	for _, t := range txns {
		if t.AccountID != a.ID {
			continue
		}
		switch t.Type {
		case Income:
			cents += t.Amount.Cents
		case Expense:
			cents -= t.Amount.Cents
		}
	}
	for _, tr := range trs {
		// Not if/else: a malformed self-transfer then nets to -AdminFee,
		// mirroring how both sides apply independently.
		if tr.ToAccountID == a.ID {
			cents += tr.Amount.Cents
		}
		if tr.FromAccountID == a.ID {
			cents -= tr.Amount.Cents + tr.AdminFee.Cents
		}
	}
	return Money{Cents: cents}
}

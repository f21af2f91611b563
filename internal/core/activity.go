package core

import (
	"sort"
	"strings"
	"time"
)

const (
	ActivityTransaction ActivityKind = "transaction"
	ActivityTransferOut ActivityKind = "transfer_out"
	ActivityTransferIn  ActivityKind = "transfer_in"
)

type ActivityKind string

// Activity is one row of the combined feed shown to the user. It is a
// tagged union: exactly one of Transaction or Transfer is set, selected
// by Kind. A transfer yields two entries, one per side.
type Activity struct {
	Kind        ActivityKind
	Transaction *Transaction
	Transfer    *Transfer
}

// Date returns the nominal date of the underlying record.
func (a Activity) Date() string {
	if a.Kind == ActivityTransaction {
		return a.Transaction.Date
	}
	return a.Transfer.Date
}

// CreatedAt returns the insertion timestamp of the underlying record.
func (a Activity) CreatedAt() time.Time {
	if a.Kind == ActivityTransaction {
		return a.Transaction.CreatedAt
	}
	return a.Transfer.CreatedAt
}

// Amount returns the signed effect of the entry on its account: positive
// for income and incoming transfers, negative for expenses and outgoing
// transfers (fee included on the outgoing side).
func (a Activity) Amount() Money {
	switch a.Kind {
	case ActivityTransaction:
		if a.Transaction.Type == Expense {
			return Money{Cents: -a.Transaction.Amount.Cents}
		}
		return a.Transaction.Amount
	case ActivityTransferOut:
		return Money{Cents: -(a.Transfer.Amount.Cents + a.Transfer.AdminFee.Cents)}
	default:
		return a.Transfer.Amount
	}
}

// Touches reports whether the entry involves the given account.
func (a Activity) Touches(accountID string) bool {
	if a.Kind == ActivityTransaction {
		return a.Transaction.AccountID == accountID
	}
	return a.Transfer.FromAccountID == accountID || a.Transfer.ToAccountID == accountID
}

// BuildActivity merges transactions and transfers into one feed sorted by
// insertion timestamp, newest first. Each transfer appears twice, as its
// outgoing and incoming legs.
func BuildActivity(txns []Transaction, trs []Transfer) []Activity {
	out := make([]Activity, 0, len(txns)+2*len(trs))
	for i := range txns {
		out = append(out, Activity{Kind: ActivityTransaction, Transaction: &txns[i]})
	}
	for i := range trs {
		out = append(out,
			Activity{Kind: ActivityTransferOut, Transfer: &trs[i]},
			Activity{Kind: ActivityTransferIn, Transfer: &trs[i]},
		)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt().After(out[j].CreatedAt())
	})
	return out
}

// FilterActivity narrows a feed to one month (YYYY-MM prefix match) and,
// when accountID is non-empty, to entries touching that account.
func FilterActivity(feed []Activity, month, accountID string) []Activity {
	out := make([]Activity, 0, len(feed))
	for _, a := range feed {
		if month != "" && !strings.HasPrefix(a.Date(), month) {
			continue
		}
		if accountID != "" && !a.Touches(accountID) {
			continue
		}
		out = append(out, a)
	}
	return out
}

package core

import "strings"

// Totals are the income/expense/net sums for one calendar month.
type Totals struct {
	Income  Money
	Expense Money
	Net     Money
}

// Series holds per-day buckets for one month, keyed by the DD component
// of the date. Expense values are negated so the three maps share sign
// conventions when charted. Days with no activity are absent.
type Series struct {
	Income  map[string]int64
	Expense map[string]int64
	Net     map[string]int64
}

// MonthTotals sums transactions whose date falls in the given YYYY-MM
// month. Membership is string-prefix matching on the nominal date; the
// insertion timestamp plays no part. Transfers never contribute to
// income or expense totals.
func MonthTotals(txns []Transaction, month string) Totals {
	var in, out int64
	for _, t := range txns {
		if !strings.HasPrefix(t.Date, month) {
			continue
		}
		switch t.Type {
		case Income:
			in += t.Amount.Cents
		case Expense:
			out += t.Amount.Cents
		}
	}
	return Totals{
		Income:  Money{Cents: in},
		Expense: Money{Cents: out},
		Net:     Money{Cents: in - out},
	}
}

// MonthSeries buckets the month's transactions by day for charting.
func MonthSeries(txns []Transaction, month string) Series {
	s := Series{
		Income:  make(map[string]int64),
		Expense: make(map[string]int64),
		Net:     make(map[string]int64),
	}
	for _, t := range txns {
		if !strings.HasPrefix(t.Date, month) {
			continue
		}
		day := DayOf(t.Date)
		switch t.Type {
		case Income:
			s.Income[day] += t.Amount.Cents
			s.Net[day] += t.Amount.Cents
		case Expense:
			s.Expense[day] -= t.Amount.Cents
			s.Net[day] -= t.Amount.Cents
		}
	}
	return s
}

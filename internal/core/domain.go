package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Bank    AccountType = "bank"
	EWallet AccountType = "ewallet"
	Cash    AccountType = "cash"

	Spend   AccountRole = "spend"
	Savings AccountRole = "savings"

	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

type (
	AccountType     string
	AccountRole     string
	TransactionType string

	Money struct {
		Cents int64
	}

	// Account is a named money-holding entity. Type and Role are display
	// and grouping attributes only; neither affects balance math.
	Account struct {
		ID             string
		UserID         string
		Name           string
		Type           AccountType
		Role           AccountRole
		OpeningBalance Money
		CreatedAt      time.Time
	}

	// Transaction is a single-account income or expense event. Date is the
	// user-editable nominal date (YYYY-MM-DD); CreatedAt is the insertion
	// timestamp used only for display ordering.
	Transaction struct {
		ID        string
		UserID    string
		Date      string
		Amount    Money
		Type      TransactionType
		AccountID string
		Category  string
		Note      string
		CreatedAt time.Time
	}

	// Transfer moves Amount from one account to another. AdminFee is borne
	// by the source only; the destination always receives the full Amount.
	Transfer struct {
		ID            string
		UserID        string
		Date          string
		Amount        Money
		AdminFee      Money
		FromAccountID string
		ToAccountID   string
		Note          string
		CreatedAt     time.Time
	}

	// Snapshot is the read-only input set a user's views are computed from.
	Snapshot struct {
		Accounts     []Account
		Transactions []Transaction
		Transfers    []Transfer
	}
)

var (
	ErrInvalidDate     = errors.New("invalid date, want YYYY-MM-DD")
	ErrInvalidMonth    = errors.New("invalid month, want YYYY-MM")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrNegativeFee     = errors.New("admin fee cannot be negative")
	ErrEmptyName       = errors.New("empty account name")
	ErrEmptyCategory   = errors.New("empty category")
	ErrInvalidType     = errors.New("invalid type")
	ErrInvalidRole     = errors.New("invalid role")
	ErrSameAccount     = errors.New("transfer source and destination must differ")
	ErrMissingAccount  = errors.New("missing account reference")
)

func (t AccountType) IsValid() bool {
	switch t {
	case Bank, EWallet, Cash:
		return true
	}
	return false
}

func (r AccountRole) IsValid() bool {
	switch r {
	case Spend, Savings:
		return true
	}
	return false
}

func (t TransactionType) IsValid() bool {
	return t == Income || t == Expense
}

// IsDate reports whether s has the YYYY-MM-DD shape. Bucketing works on
// string prefixes, so shape is the only thing the rest of the code relies on.
func IsDate(s string) bool {
	if len(s) != 10 || s[4] != '-' || s[7] != '-' {
		return false
	}
	return allDigits(s[:4]) && allDigits(s[5:7]) && allDigits(s[8:])
}

// IsMonth reports whether s has the YYYY-MM shape.
func IsMonth(s string) bool {
	if len(s) != 7 || s[4] != '-' {
		return false
	}
	return allDigits(s[:4]) && allDigits(s[5:])
}

// MonthOf returns the YYYY-MM prefix of a date string.
func MonthOf(date string) string {
	if len(date) < 7 {
		return date
	}
	return date[:7]
}

// DayOf returns the DD component of a date string.
func DayOf(date string) string {
	if len(date) < 10 {
		return ""
	}
	return date[8:10]
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return len(s) > 0
}

func (a Account) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return ErrEmptyName
	}
	if !a.Type.IsValid() {
		return ErrInvalidType
	}
	if !a.Role.IsValid() {
		return ErrInvalidRole
	}
	// OpeningBalance may be any signed value, including negative.
	return nil
}

func (t Transaction) Validate() error {
	if !IsDate(t.Date) {
		return ErrInvalidDate
	}
	if t.Amount.Cents < 0 {
		return ErrInvalidAmount
	}
	if !t.Type.IsValid() {
		return ErrInvalidType
	}
	if t.AccountID == "" {
		return ErrMissingAccount
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	return nil
}

func (tr Transfer) Validate() error {
	if !IsDate(tr.Date) {
		return ErrInvalidDate
	}
	if tr.Amount.Cents < 0 {
		return ErrInvalidAmount
	}
	if tr.AdminFee.Cents < 0 {
		return ErrNegativeFee
	}
	if tr.FromAccountID == "" || tr.ToAccountID == "" {
		return ErrMissingAccount
	}
	if tr.FromAccountID == tr.ToAccountID {
		return ErrSameAccount
	}
	return nil
}

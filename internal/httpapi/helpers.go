package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"uangku/internal/core"
	"uangku/internal/ledger"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

// writeServiceError maps domain and service errors onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ledger.ErrNotFound):
		writeError(w, http.StatusNotFound, err)
	case errors.Is(err, ledger.ErrAccountNotEmpty):
		writeError(w, http.StatusConflict, err)
	case errors.Is(err, core.ErrInvalidDate),
		errors.Is(err, core.ErrInvalidMonth),
		errors.Is(err, core.ErrInvalidAmount),
		errors.Is(err, core.ErrNegativeFee),
		errors.Is(err, core.ErrEmptyName),
		errors.Is(err, core.ErrEmptyCategory),
		errors.Is(err, core.ErrInvalidType),
		errors.Is(err, core.ErrInvalidRole),
		errors.Is(err, core.ErrSameAccount),
		errors.Is(err, core.ErrMissingAccount):
		writeError(w, http.StatusUnprocessableEntity, err)
	default:
		writeError(w, http.StatusInternalServerError, err)
	}
}

func readJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}

// parseMoney accepts a user-entered decimal string such as "150.00" or
// "150,5" and converts it to cents.
func parseMoney(s string) (core.Money, error) {
	return core.ParseAmount(s)
}

type moneyJSON struct {
	Cents   int64  `json:"cents"`
	Display string `json:"display"`
}

func money(m core.Money) moneyJSON {
	return moneyJSON{Cents: m.Cents, Display: m.Decimal()}
}

type accountJSON struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Type           string    `json:"type"`
	Role           string    `json:"role"`
	OpeningBalance moneyJSON `json:"opening_balance"`
	CreatedAt      string    `json:"created_at"`
}

func accountToJSON(a core.Account) accountJSON {
	return accountJSON{
		ID:             a.ID,
		Name:           a.Name,
		Type:           string(a.Type),
		Role:           string(a.Role),
		OpeningBalance: money(a.OpeningBalance),
		CreatedAt:      a.CreatedAt.Format(timeLayout),
	}
}

type transactionJSON struct {
	ID        string    `json:"id"`
	Date      string    `json:"date"`
	Amount    moneyJSON `json:"amount"`
	Type      string    `json:"type"`
	AccountID string    `json:"account_id"`
	Category  string    `json:"category"`
	Note      string    `json:"note,omitempty"`
	CreatedAt string    `json:"created_at"`
}

func transactionToJSON(t core.Transaction) transactionJSON {
	return transactionJSON{
		ID:        t.ID,
		Date:      t.Date,
		Amount:    money(t.Amount),
		Type:      string(t.Type),
		AccountID: t.AccountID,
		Category:  t.Category,
		Note:      t.Note,
		CreatedAt: t.CreatedAt.Format(timeLayout),
	}
}

type transferJSON struct {
	ID            string    `json:"id"`
	Date          string    `json:"date"`
	Amount        moneyJSON `json:"amount"`
	AdminFee      moneyJSON `json:"admin_fee"`
	FromAccountID string    `json:"from_account_id"`
	ToAccountID   string    `json:"to_account_id"`
	Note          string    `json:"note,omitempty"`
	CreatedAt     string    `json:"created_at"`
}

func transferToJSON(tr core.Transfer) transferJSON {
	return transferJSON{
		ID:            tr.ID,
		Date:          tr.Date,
		Amount:        money(tr.Amount),
		AdminFee:      money(tr.AdminFee),
		FromAccountID: tr.FromAccountID,
		ToAccountID:   tr.ToAccountID,
		Note:          tr.Note,
		CreatedAt:     tr.CreatedAt.Format(timeLayout),
	}
}

const timeLayout = "2006-01-02T15:04:05Z07:00"

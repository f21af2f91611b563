package httpapi

import (
	"fmt"
	"net/http"

	"uangku/internal/core"
	"uangku/internal/export"
	"uangku/internal/ledger"
	"uangku/internal/log"
	"uangku/internal/metrics"
)

type statementJSON struct {
	Month        string            `json:"month"`
	Totals       totalsJSON        `json:"totals"`
	Series       seriesJSON        `json:"series"`
	Transactions []transactionJSON `json:"transactions"`
}

type totalsJSON struct {
	Income  moneyJSON `json:"income"`
	Expense moneyJSON `json:"expense"`
	Net     moneyJSON `json:"net"`
}

// seriesJSON maps DD day keys to cents. Expense values are negative so
// charts can plot both series on one axis.
type seriesJSON struct {
	Income  map[string]int64 `json:"income"`
	Expense map[string]int64 `json:"expense"`
	Net     map[string]int64 `json:"net"`
}

func (s *Server) handleStatement(w http.ResponseWriter, r *http.Request, userID string) {
	month := r.URL.Query().Get("month")
	st, err := s.statement(r, userID, month)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp := statementJSON{
		Month: st.Month,
		Totals: totalsJSON{
			Income:  money(st.Totals.Income),
			Expense: money(st.Totals.Expense),
			Net:     money(st.Totals.Net),
		},
		Series: seriesJSON{
			Income:  st.Series.Income,
			Expense: st.Series.Expense,
			Net:     st.Series.Net,
		},
		Transactions: make([]transactionJSON, 0, len(st.Transactions)),
	}
	for _, t := range st.Transactions {
		resp.Transactions = append(resp.Transactions, transactionToJSON(t))
	}
	writeJSON(w, http.StatusOK, resp)
}

// statement serves from the per-user month cache when possible.
func (s *Server) statement(r *http.Request, userID, month string) (ledger.Statement, error) {
	key := statementKey(userID, month)
	if st, ok := s.statementCache.Get(key); ok {
		metrics.StatementCache.WithLabelValues("hit").Inc()
		return st, nil
	}
	metrics.StatementCache.WithLabelValues("miss").Inc()

	st, err := s.svc.Statement(r.Context(), userID, month)
	if err != nil {
		return ledger.Statement{}, err
	}
	s.statementCache.Set(key, st)
	return st, nil
}

type activityJSON struct {
	Kind        string           `json:"kind"`
	Date        string           `json:"date"`
	Amount      moneyJSON        `json:"amount"`
	CreatedAt   string           `json:"created_at"`
	Transaction *transactionJSON `json:"transaction,omitempty"`
	Transfer    *transferJSON    `json:"transfer,omitempty"`
}

// handleActivity returns the combined feed, optionally narrowed by
// ?month=YYYY-MM and ?account=<id>.
func (s *Server) handleActivity(w http.ResponseWriter, r *http.Request, userID string) {
	feed, err := s.svc.Activity(r.Context(), userID,
		r.URL.Query().Get("month"), r.URL.Query().Get("account"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	out := make([]activityJSON, 0, len(feed))
	for _, a := range feed {
		entry := activityJSON{
			Kind:      string(a.Kind),
			Date:      a.Date(),
			Amount:    money(a.Amount()),
			CreatedAt: a.CreatedAt().Format(timeLayout),
		}
		if a.Kind == core.ActivityTransaction {
			t := transactionToJSON(*a.Transaction)
			entry.Transaction = &t
		} else {
			tr := transferToJSON(*a.Transfer)
			entry.Transfer = &tr
		}
		out = append(out, entry)
	}
	writeJSON(w, http.StatusOK, out)
}

// handleExportStatement streams one month as CSV.
func (s *Server) handleExportStatement(w http.ResponseWriter, r *http.Request, userID string) {
	month := r.URL.Query().Get("month")
	if !core.IsMonth(month) {
		writeError(w, http.StatusUnprocessableEntity, core.ErrInvalidMonth)
		return
	}
	txns, err := s.svc.Transactions(r.Context(), userID, month)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "statement-"+month+".csv"))
	if err := export.Statement(w, txns, month); err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Failed to stream statement CSV",
			"error", err, "month", month)
	}
}

// handleExportAll streams the user's full ledger as CSV, the backup
// format of the data page.
func (s *Server) handleExportAll(w http.ResponseWriter, r *http.Request, userID string) {
	snap, err := s.svc.Snapshot(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="uangku-export.csv"`)
	if err := export.All(w, snap.Transactions, snap.Transfers); err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Failed to stream full export", "error", err)
	}
}

package httpapi

import (
	"net/http"

	"uangku/internal/core"
	"uangku/internal/ledger"
)

type transactionRequest struct {
	Date      string `json:"date"`
	Amount    string `json:"amount"`
	Type      string `json:"type"`
	AccountID string `json:"account_id"`
	Category  string `json:"category"`
	Note      string `json:"note"`
}

// handleListTransactions returns the full history, or one month of it
// when ?month=YYYY-MM is given.
func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request, userID string) {
	txns, err := s.svc.Transactions(r.Context(), userID, r.URL.Query().Get("month"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	out := make([]transactionJSON, 0, len(txns))
	for _, t := range txns {
		out = append(out, transactionToJSON(t))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request, userID string) {
	var req transactionRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	amount, err := parseMoney(req.Amount)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}

	t, err := s.svc.CreateTransaction(r.Context(), userID, ledger.NewTransactionParams{
		Date:      req.Date,
		Amount:    amount,
		Type:      core.TransactionType(req.Type),
		AccountID: req.AccountID,
		Category:  req.Category,
		Note:      req.Note,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	s.invalidateStatements(userID, core.MonthOf(t.Date))
	writeJSON(w, http.StatusCreated, transactionToJSON(t))
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request, userID string) {
	var req transactionRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	amount, err := parseMoney(req.Amount)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}

	id := r.PathValue("id")
	prev, err := s.svc.Transaction(r.Context(), userID, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	err = s.svc.UpdateTransaction(r.Context(), userID, id, ledger.TransactionUpdate{
		Date:      req.Date,
		Amount:    amount,
		Type:      core.TransactionType(req.Type),
		AccountID: req.AccountID,
		Category:  req.Category,
		Note:      req.Note,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	s.invalidateStatements(userID, core.MonthOf(prev.Date), core.MonthOf(req.Date))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request, userID string) {
	id := r.PathValue("id")
	prev, err := s.svc.Transaction(r.Context(), userID, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if err := s.svc.DeleteTransaction(r.Context(), userID, id); err != nil {
		writeServiceError(w, err)
		return
	}
	s.invalidateStatements(userID, core.MonthOf(prev.Date))
	w.WriteHeader(http.StatusNoContent)
}

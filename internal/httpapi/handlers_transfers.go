package httpapi

import (
	"net/http"

	"uangku/internal/core"
	"uangku/internal/ledger"
)

type transferRequest struct {
	Date          string `json:"date"`
	Amount        string `json:"amount"`
	AdminFee      string `json:"admin_fee"`
	FromAccountID string `json:"from_account_id"`
	ToAccountID   string `json:"to_account_id"`
	Note          string `json:"note"`
}

func (s *Server) handleListTransfers(w http.ResponseWriter, r *http.Request, userID string) {
	snap, err := s.svc.Snapshot(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	out := make([]transferJSON, 0, len(snap.Transfers))
	for _, tr := range snap.Transfers {
		out = append(out, transferToJSON(tr))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateTransfer(w http.ResponseWriter, r *http.Request, userID string) {
	var req transferRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	amount, err := parseMoney(req.Amount)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	fee := core.Money{}
	if req.AdminFee != "" {
		if fee, err = parseMoney(req.AdminFee); err != nil {
			writeError(w, http.StatusUnprocessableEntity, err)
			return
		}
	}

	tr, err := s.svc.CreateTransfer(r.Context(), userID, ledger.NewTransferParams{
		Date:          req.Date,
		Amount:        amount,
		AdminFee:      fee,
		FromAccountID: req.FromAccountID,
		ToAccountID:   req.ToAccountID,
		Note:          req.Note,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, transferToJSON(tr))
}

func (s *Server) handleDeleteTransfer(w http.ResponseWriter, r *http.Request, userID string) {
	if err := s.svc.DeleteTransfer(r.Context(), userID, r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

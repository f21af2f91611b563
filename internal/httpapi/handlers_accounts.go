package httpapi

import (
	"net/http"

	"uangku/internal/core"
	"uangku/internal/ledger"
	"uangku/internal/log"
)

type accountRequest struct {
	Name           string `json:"name"`
	Type           string `json:"type"`
	Role           string `json:"role"`
	OpeningBalance string `json:"opening_balance"`
}

type balanceSheetJSON struct {
	Accounts  []accountBalanceJSON `json:"accounts"`
	Total     moneyJSON            `json:"total"`
	Spendable moneyJSON            `json:"spendable"`
	Savings   moneyJSON            `json:"savings"`
}

type accountBalanceJSON struct {
	accountJSON
	Balance moneyJSON `json:"balance"`
}

// handleListAccounts returns every account with its computed balance
// plus the role rollups, the payload behind the home view.
func (s *Server) handleListAccounts(w http.ResponseWriter, r *http.Request, userID string) {
	sheet, err := s.svc.Balances(r.Context(), userID)
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Failed to compute balances", "error", err)
		writeServiceError(w, err)
		return
	}

	resp := balanceSheetJSON{
		Accounts:  make([]accountBalanceJSON, 0, len(sheet.Accounts)),
		Total:     money(sheet.Total),
		Spendable: money(sheet.Spendable),
		Savings:   money(sheet.Savings),
	}
	for _, ab := range sheet.Accounts {
		resp.Accounts = append(resp.Accounts, accountBalanceJSON{
			accountJSON: accountToJSON(ab.Account),
			Balance:     money(ab.Balance),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateAccount(w http.ResponseWriter, r *http.Request, userID string) {
	var req accountRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	opening := core.Money{}
	if req.OpeningBalance != "" {
		var err error
		if opening, err = parseMoney(req.OpeningBalance); err != nil {
			writeError(w, http.StatusUnprocessableEntity, err)
			return
		}
	}

	a, err := s.svc.CreateAccount(r.Context(), userID, ledger.NewAccountParams{
		Name:           req.Name,
		Type:           core.AccountType(req.Type),
		Role:           core.AccountRole(req.Role),
		OpeningBalance: opening,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, accountToJSON(a))
}

func (s *Server) handleUpdateAccount(w http.ResponseWriter, r *http.Request, userID string) {
	var req accountRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	err := s.svc.UpdateAccount(r.Context(), userID, r.PathValue("id"), ledger.AccountUpdate{
		Name: req.Name,
		Type: core.AccountType(req.Type),
		Role: core.AccountRole(req.Role),
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteAccount(w http.ResponseWriter, r *http.Request, userID string) {
	if err := s.svc.DeleteAccount(r.Context(), userID, r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

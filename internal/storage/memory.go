package storage

import (
	"context"
	"sort"
	"sync"

	"uangku/internal/core"
	"uangku/internal/ledger"
)

// MemoryStore keeps all records in process memory. It backs tests and
// the DATA_BACKEND=memory mode; semantics match the SQLite repository.
type MemoryStore struct {
	mu        sync.Mutex
	accounts  map[string]core.Account
	txns      map[string]core.Transaction
	transfers map[string]core.Transfer
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		accounts:  make(map[string]core.Account),
		txns:      make(map[string]core.Transaction),
		transfers: make(map[string]core.Transfer),
	}
}

func (s *MemoryStore) Close() error { return nil }

func (s *MemoryStore) CreateAccount(_ context.Context, a core.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[a.ID] = a
	return nil
}

func (s *MemoryStore) GetAccount(_ context.Context, userID, id string) (core.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[id]
	if !ok || a.UserID != userID {
		return core.Account{}, ledger.ErrNotFound
	}
	return a, nil
}

func (s *MemoryStore) ListAccounts(_ context.Context, userID string) ([]core.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Account
	for _, a := range s.accounts {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *MemoryStore) UpdateAccount(_ context.Context, userID, id string, upd ledger.AccountUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[id]
	if !ok || a.UserID != userID {
		return ledger.ErrNotFound
	}
	a.Name, a.Type, a.Role = upd.Name, upd.Type, upd.Role
	s.accounts[id] = a
	return nil
}

func (s *MemoryStore) DeleteAccount(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[id]
	if !ok || a.UserID != userID {
		return ledger.ErrNotFound
	}
	delete(s.accounts, id)
	return nil
}

func (s *MemoryStore) CreateTransaction(_ context.Context, t core.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.txns[t.ID] = t
	return nil
}

func (s *MemoryStore) GetTransaction(_ context.Context, userID, id string) (core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.txns[id]
	if !ok || t.UserID != userID {
		return core.Transaction{}, ledger.ErrNotFound
	}
	return t, nil
}

func (s *MemoryStore) ListTransactions(_ context.Context, userID string) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Transaction
	for _, t := range s.txns {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *MemoryStore) UpdateTransaction(_ context.Context, userID, id string, upd ledger.TransactionUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.txns[id]
	if !ok || t.UserID != userID {
		return ledger.ErrNotFound
	}
	t.Date, t.Amount, t.Type = upd.Date, upd.Amount, upd.Type
	t.AccountID, t.Category, t.Note = upd.AccountID, upd.Category, upd.Note
	s.txns[id] = t
	return nil
}

func (s *MemoryStore) DeleteTransaction(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.txns[id]
	if !ok || t.UserID != userID {
		return ledger.ErrNotFound
	}
	delete(s.txns, id)
	return nil
}

func (s *MemoryStore) CreateTransfer(_ context.Context, tr core.Transfer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transfers[tr.ID] = tr
	return nil
}

func (s *MemoryStore) ListTransfers(_ context.Context, userID string) ([]core.Transfer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Transfer
	for _, tr := range s.transfers {
		if tr.UserID == userID {
			out = append(out, tr)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *MemoryStore) DeleteTransfer(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tr, ok := s.transfers[id]
	if !ok || tr.UserID != userID {
		return ledger.ErrNotFound
	}
	delete(s.transfers, id)
	return nil
}

func (s *MemoryStore) ListUserIDs(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	seen := map[string]struct{}{}
	for _, t := range s.txns {
		seen[t.UserID] = struct{}{}
	}
	for _, tr := range s.transfers {
		seen[tr.UserID] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Strings(out)
	return out, nil
}

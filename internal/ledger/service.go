package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"uangku/internal/core"
	"uangku/internal/metrics"
)

// Service is the single source of truth for balances and statements.
// Every presentation surface goes through it rather than re-deriving
// sums from raw rows.
type Service struct {
	store Store
	pub   Publisher // nil when change events are disabled
}

func NewService(store Store, pub Publisher) *Service {
	return &Service{store: store, pub: pub}
}

// Snapshot loads the user's accounts, transactions and transfers with
// three independent fetches joined before any computation starts.
func (s *Service) Snapshot(ctx context.Context, userID string) (core.Snapshot, error) {
	var snap core.Snapshot
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		snap.Accounts, err = s.store.ListAccounts(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Transactions, err = s.store.ListTransactions(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Transfers, err = s.store.ListTransfers(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return core.Snapshot{}, fmt.Errorf("load snapshot: %w", err)
	}
	return snap, nil
}

// AccountBalance pairs an account with its computed balance.
type AccountBalance struct {
	Account core.Account
	Balance core.Money
}

// BalanceSheet is the home view: every account with its balance, plus
// rollups by role.
type BalanceSheet struct {
	Accounts  []AccountBalance
	Total     core.Money
	Spendable core.Money
	Savings   core.Money
}

// Balances computes every account's current balance from one snapshot.
func (s *Service) Balances(ctx context.Context, userID string) (BalanceSheet, error) {
	snap, err := s.Snapshot(ctx, userID)
	if err != nil {
		return BalanceSheet{}, err
	}
	return buildBalanceSheet(snap), nil
}

func buildBalanceSheet(snap core.Snapshot) BalanceSheet {
	sheet := BalanceSheet{Accounts: make([]AccountBalance, 0, len(snap.Accounts))}
	for _, a := range snap.Accounts {
		b := core.AccountBalance(a, snap.Transactions, snap.Transfers)
		sheet.Accounts = append(sheet.Accounts, AccountBalance{Account: a, Balance: b})
		sheet.Total.Cents += b.Cents
		if a.Role == core.Savings {
			sheet.Savings.Cents += b.Cents
		} else {
			sheet.Spendable.Cents += b.Cents
		}
	}
	return sheet
}

// Statement is one month's aggregate view.
type Statement struct {
	Month        string
	Totals       core.Totals
	Series       core.Series
	Transactions []core.Transaction
}

// Statement computes the totals, per-day series, and the raw filtered
// rows for one YYYY-MM month.
func (s *Service) Statement(ctx context.Context, userID, month string) (Statement, error) {
	if !core.IsMonth(month) {
		return Statement{}, core.ErrInvalidMonth
	}
	txns, err := s.store.ListTransactions(ctx, userID)
	if err != nil {
		return Statement{}, fmt.Errorf("list transactions: %w", err)
	}
	return buildStatement(txns, month), nil
}

func buildStatement(txns []core.Transaction, month string) Statement {
	st := Statement{
		Month:  month,
		Totals: core.MonthTotals(txns, month),
		Series: core.MonthSeries(txns, month),
	}
	for _, t := range txns {
		if core.MonthOf(t.Date) == month {
			st.Transactions = append(st.Transactions, t)
		}
	}
	return st
}

// Activity returns the combined feed, optionally narrowed to a month
// and/or an account.
func (s *Service) Activity(ctx context.Context, userID, month, accountID string) ([]core.Activity, error) {
	if month != "" && !core.IsMonth(month) {
		return nil, core.ErrInvalidMonth
	}
	snap, err := s.Snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}
	feed := core.BuildActivity(snap.Transactions, snap.Transfers)
	return core.FilterActivity(feed, month, accountID), nil
}

// Transactions returns the user's history, narrowed to one month when
// month is non-empty.
func (s *Service) Transactions(ctx context.Context, userID, month string) ([]core.Transaction, error) {
	if month != "" && !core.IsMonth(month) {
		return nil, core.ErrInvalidMonth
	}
	txns, err := s.store.ListTransactions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	if month == "" {
		return txns, nil
	}
	out := txns[:0:0]
	for _, t := range txns {
		if core.MonthOf(t.Date) == month {
			out = append(out, t)
		}
	}
	return out, nil
}

// Transaction returns one transaction owned by the user.
func (s *Service) Transaction(ctx context.Context, userID, id string) (core.Transaction, error) {
	return s.store.GetTransaction(ctx, userID, id)
}

// NewAccountParams are the creation-time account attributes.
type NewAccountParams struct {
	Name           string
	Type           core.AccountType
	Role           core.AccountRole
	OpeningBalance core.Money
}

func (s *Service) CreateAccount(ctx context.Context, userID string, p NewAccountParams) (core.Account, error) {
	if p.Role == "" {
		p.Role = core.Spend
	}
	a := core.Account{
		ID:             uuid.NewString(),
		UserID:         userID,
		Name:           p.Name,
		Type:           p.Type,
		Role:           p.Role,
		OpeningBalance: p.OpeningBalance,
		CreatedAt:      time.Now().UTC(),
	}
	if err := a.Validate(); err != nil {
		return core.Account{}, err
	}
	if err := s.store.CreateAccount(ctx, a); err != nil {
		return core.Account{}, fmt.Errorf("create account: %w", err)
	}
	metrics.LedgerWrites.WithLabelValues("account", "create").Inc()
	s.publishChange(ctx, userID, "", "account")
	return a, nil
}

func (s *Service) UpdateAccount(ctx context.Context, userID, id string, upd AccountUpdate) error {
	if upd.Role == "" {
		upd.Role = core.Spend
	}
	probe := core.Account{Name: upd.Name, Type: upd.Type, Role: upd.Role}
	if err := probe.Validate(); err != nil {
		return err
	}
	if err := s.store.UpdateAccount(ctx, userID, id, upd); err != nil {
		return err
	}
	metrics.LedgerWrites.WithLabelValues("account", "update").Inc()
	s.publishChange(ctx, userID, "", "account")
	return nil
}

// DeleteAccount removes an account only when its computed balance is
// exactly zero. The guard lives here, not in the database.
func (s *Service) DeleteAccount(ctx context.Context, userID, id string) error {
	snap, err := s.Snapshot(ctx, userID)
	if err != nil {
		return err
	}
	var target *core.Account
	for i := range snap.Accounts {
		if snap.Accounts[i].ID == id {
			target = &snap.Accounts[i]
			break
		}
	}
	if target == nil {
		return ErrNotFound
	}
	if core.AccountBalance(*target, snap.Transactions, snap.Transfers).Cents != 0 {
		return ErrAccountNotEmpty
	}
	if err := s.store.DeleteAccount(ctx, userID, id); err != nil {
		return err
	}
	metrics.LedgerWrites.WithLabelValues("account", "delete").Inc()
	s.publishChange(ctx, userID, "", "account")
	return nil
}

// NewTransactionParams are the creation-time transaction attributes.
type NewTransactionParams struct {
	Date      string
	Amount    core.Money
	Type      core.TransactionType
	AccountID string
	Category  string
	Note      string
}

func (s *Service) CreateTransaction(ctx context.Context, userID string, p NewTransactionParams) (core.Transaction, error) {
	t := core.Transaction{
		ID:        uuid.NewString(),
		UserID:    userID,
		Date:      p.Date,
		Amount:    p.Amount,
		Type:      p.Type,
		AccountID: p.AccountID,
		Category:  p.Category,
		Note:      p.Note,
		CreatedAt: time.Now().UTC(),
	}
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}
	if _, err := s.store.GetAccount(ctx, userID, p.AccountID); err != nil {
		return core.Transaction{}, err
	}
	if err := s.store.CreateTransaction(ctx, t); err != nil {
		return core.Transaction{}, fmt.Errorf("create transaction: %w", err)
	}
	metrics.LedgerWrites.WithLabelValues("transaction", "create").Inc()
	s.publishChange(ctx, userID, core.MonthOf(t.Date), "transaction")
	return t, nil
}

func (s *Service) UpdateTransaction(ctx context.Context, userID, id string, upd TransactionUpdate) error {
	probe := core.Transaction{
		Date: upd.Date, Amount: upd.Amount, Type: upd.Type,
		AccountID: upd.AccountID, Category: upd.Category,
	}
	if err := probe.Validate(); err != nil {
		return err
	}
	prev, err := s.store.GetTransaction(ctx, userID, id)
	if err != nil {
		return err
	}
	if _, err := s.store.GetAccount(ctx, userID, upd.AccountID); err != nil {
		return err
	}
	if err := s.store.UpdateTransaction(ctx, userID, id, upd); err != nil {
		return err
	}
	metrics.LedgerWrites.WithLabelValues("transaction", "update").Inc()
	s.publishChange(ctx, userID, core.MonthOf(upd.Date), "transaction")
	if prevMonth := core.MonthOf(prev.Date); prevMonth != core.MonthOf(upd.Date) {
		// Moving a row across months dirties both statements.
		s.publishChange(ctx, userID, prevMonth, "transaction")
	}
	return nil
}

func (s *Service) DeleteTransaction(ctx context.Context, userID, id string) error {
	prev, err := s.store.GetTransaction(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := s.store.DeleteTransaction(ctx, userID, id); err != nil {
		return err
	}
	metrics.LedgerWrites.WithLabelValues("transaction", "delete").Inc()
	s.publishChange(ctx, userID, core.MonthOf(prev.Date), "transaction")
	return nil
}

// NewTransferParams are the creation-time transfer attributes.
type NewTransferParams struct {
	Date          string
	Amount        core.Money
	AdminFee      core.Money
	FromAccountID string
	ToAccountID   string
	Note          string
}

func (s *Service) CreateTransfer(ctx context.Context, userID string, p NewTransferParams) (core.Transfer, error) {
	tr := core.Transfer{
		ID:            uuid.NewString(),
		UserID:        userID,
		Date:          p.Date,
		Amount:        p.Amount,
		AdminFee:      p.AdminFee,
		FromAccountID: p.FromAccountID,
		ToAccountID:   p.ToAccountID,
		Note:          p.Note,
		CreatedAt:     time.Now().UTC(),
	}
	if err := tr.Validate(); err != nil {
		return core.Transfer{}, err
	}
	if _, err := s.store.GetAccount(ctx, userID, p.FromAccountID); err != nil {
		return core.Transfer{}, err
	}
	if _, err := s.store.GetAccount(ctx, userID, p.ToAccountID); err != nil {
		return core.Transfer{}, err
	}
	if err := s.store.CreateTransfer(ctx, tr); err != nil {
		return core.Transfer{}, fmt.Errorf("create transfer: %w", err)
	}
	metrics.LedgerWrites.WithLabelValues("transfer", "create").Inc()
	s.publishChange(ctx, userID, core.MonthOf(tr.Date), "transfer")
	return tr, nil
}

func (s *Service) DeleteTransfer(ctx context.Context, userID, id string) error {
	transfers, err := s.store.ListTransfers(ctx, userID)
	if err != nil {
		return err
	}
	month := ""
	for _, tr := range transfers {
		if tr.ID == id {
			month = core.MonthOf(tr.Date)
			break
		}
	}
	if err := s.store.DeleteTransfer(ctx, userID, id); err != nil {
		return err
	}
	metrics.LedgerWrites.WithLabelValues("transfer", "delete").Inc()
	s.publishChange(ctx, userID, month, "transfer")
	return nil
}

// publishChange emits a best-effort change event. Local writes never
// fail because the broker is unreachable.
func (s *Service) publishChange(ctx context.Context, userID, month, kind string) {
	if s.pub == nil {
		return
	}
	if err := s.pub.PublishLedgerChange(ctx, userID, month, kind); err != nil {
		metrics.PublishFailures.Inc()
		slog.WarnContext(ctx, "Failed to publish ledger change",
			"error", err, "user_id", userID, "month", month, "kind", kind)
		return
	}
	metrics.ChangesPublished.Inc()
}

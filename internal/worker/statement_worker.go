// Package worker consumes ledger change events and materializes monthly
// statement CSV files, optionally mirroring them to a spreadsheet.
package worker

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"uangku/internal/amqp"
	"uangku/internal/core"
	"uangku/internal/export"
	"uangku/internal/ledger"
	"uangku/internal/log"
	"uangku/internal/metrics"
)

// Mirror pushes statement rows to an external surface such as a Google
// spreadsheet. It is optional; a nil mirror disables the step.
type Mirror interface {
	AppendStatement(ctx context.Context, userID, month string, txns []core.Transaction) error
}

type StatementWorker struct {
	store     ledger.Store
	exportDir string
	mirror    Mirror
	logger    *log.Logger
}

func NewStatementWorker(store ledger.Store, exportDir string, mirror Mirror, logger *log.Logger) *StatementWorker {
	return &StatementWorker{
		store:     store,
		exportDir: exportDir,
		mirror:    mirror,
		logger:    logger.WithComponent("statement_worker"),
	}
}

// HandleChange re-exports the month named by a change event. Returning
// an error requeues the delivery, so only retryable failures propagate.
func (w *StatementWorker) HandleChange(ctx context.Context, msg *amqp.LedgerChangeMessage) error {
	if !core.IsMonth(msg.Month) {
		w.logger.WarnContext(ctx, "Dropping change event with malformed month",
			"user_id", msg.UserID, "month", msg.Month, "kind", msg.Kind)
		return nil
	}
	return w.ExportMonth(ctx, msg.UserID, msg.Month)
}

// ExportMonth writes <exportDir>/<userID>/statement-<month>.csv from the
// user's current transactions and mirrors the rows when configured.
func (w *StatementWorker) ExportMonth(ctx context.Context, userID, month string) error {
	txns, err := w.store.ListTransactions(ctx, userID)
	if err != nil {
		metrics.StatementsExported.WithLabelValues("error").Inc()
		return fmt.Errorf("list transactions: %w", err)
	}

	path, err := w.writeStatement(userID, month, txns)
	if err != nil {
		metrics.StatementsExported.WithLabelValues("error").Inc()
		return err
	}
	metrics.StatementsExported.WithLabelValues("ok").Inc()
	w.logger.InfoContext(ctx, "Exported statement",
		"user_id", userID, "month", month, "path", path)

	if w.mirror != nil {
		if err := w.mirror.AppendStatement(ctx, userID, month, txns); err != nil {
			// The CSV on disk is the source of truth; a mirror failure
			// must not requeue the event.
			w.logger.ErrorContext(ctx, "Failed to mirror statement",
				"error", err, "user_id", userID, "month", month)
		}
	}
	return nil
}

func (w *StatementWorker) writeStatement(userID, month string, txns []core.Transaction) (string, error) {
	dir := filepath.Join(w.exportDir, userID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}

	path := filepath.Join(dir, "statement-"+month+".csv")
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return "", fmt.Errorf("create statement file: %w", err)
	}
	if err := export.Statement(f, txns, month); err != nil {
		f.Close()
		os.Remove(tmp)
		return "", fmt.Errorf("render statement: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("close statement file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("replace statement file: %w", err)
	}
	return path, nil
}

// RunCatchUp periodically re-exports the current month for every known
// user, covering events lost while the worker was down. It blocks until
// the context ends.
func (w *StatementWorker) RunCatchUp(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	w.logger.InfoContext(ctx, "Starting catch-up loop", "interval", interval)
	for {
		select {
		case <-ctx.Done():
			w.logger.InfoContext(ctx, "Stopping catch-up loop", "reason", ctx.Err())
			return
		case <-ticker.C:
			w.catchUp(ctx)
		}
	}
}

func (w *StatementWorker) catchUp(ctx context.Context) {
	users, err := w.store.ListUserIDs(ctx)
	if err != nil {
		w.logger.ErrorContext(ctx, "Failed to list users for catch-up", "error", err)
		return
	}

	month := time.Now().UTC().Format("2006-01")
	for _, userID := range users {
		if err := w.ExportMonth(ctx, userID, month); err != nil {
			w.logger.ErrorContext(ctx, "Catch-up export failed",
				"error", err, "user_id", userID, "month", month)
		}
	}
}

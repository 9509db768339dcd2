package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"

	"marketplace/internal/core/application/usecases/commands"
)

// EscrowReconciliationJob periodically heals orders whose escrow gate never
// fired: both deposits funded but the status still AWAITING_ESCROW. The gate
// normally opens inside the deposit transaction, so this sweep only matters
// after a crash between the wallet write and the order write.
type EscrowReconciliationJob struct {
	handler  commands.ReconcileEscrowCommandHandler
	cronSpec string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewEscrowReconciliationJob creates the sweep job.
// The cron spec uses the six-field format with seconds.
func NewEscrowReconciliationJob(
	handler commands.ReconcileEscrowCommandHandler,
	cronSpec string,
	logger *slog.Logger,
) *EscrowReconciliationJob {
	return &EscrowReconciliationJob{
		handler:  handler,
		cronSpec: cronSpec,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "escrow_reconciliation_job"),
	}
}

// Start begins the escrow reconciliation job on the configured schedule.
func (j *EscrowReconciliationJob) Start() error {
	_, err := j.cron.AddFunc(j.cronSpec, func() {
		ctx := context.Background()
		cmd := commands.NewReconcileEscrowCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Escrow reconciliation job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(),
		"Escrow reconciliation job started", "schedule", j.cronSpec)
	return nil
}

// Stop stops the escrow reconciliation job.
func (j *EscrowReconciliationJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Escrow reconciliation job stopped")
}

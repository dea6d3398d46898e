package jobs

import (
	"context"
	"time"

	"rentio-backend/internal/logger"
)

// MarkOverdueRentals moves PICKED_UP rentals past their end date to
// OVERDUE. Safe to rerun; an already swept rental is skipped.
func (jr *JobRunner) MarkOverdueRentals() {
	jr.runWithRecovery("MarkOverdueRentals", func() {
		ctx := context.Background()

		count, err := jr.rentals.SweepOverdue(ctx, time.Now().UTC())
		if err != nil {
			logger.Error("Failed to mark overdue rentals", "error", err)
			return
		}

		logger.Info("Marked rentals as overdue", "count", count)
	})
}

package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/harborlabs/fleetdocs/internal/certificate"
	"github.com/harborlabs/fleetdocs/internal/queue"
)

// BackfillWorker runs the ship-info backfill scanner off-request, so large
// repair passes do not tie up an HTTP call.
type BackfillWorker struct {
	certSvc *certificate.Service
}

func NewBackfillWorker(certSvc *certificate.Service) *BackfillWorker {
	return &BackfillWorker{certSvc: certSvc}
}

func (w *BackfillWorker) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload queue.BackfillShipInfoPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	report, err := w.certSvc.Backfill(ctx, payload.Limit)
	if err != nil {
		return fmt.Errorf("backfill ship info: %w", err)
	}

	slog.Info("backfill task complete",
		"found", report.FoundCertificates,
		"processed", report.Processed,
	)
	return nil
}

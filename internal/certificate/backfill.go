package certificate

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/harborlabs/fleetdocs/internal/audit"
	"github.com/harborlabs/fleetdocs/internal/extraction"
	"github.com/harborlabs/fleetdocs/internal/models"
)

// Backfill statuses, one per scanned document.
const (
	BackfillUpdated     = "updated"
	BackfillNoShipName  = "no_ship_name"
	BackfillUnknownShip = "unknown_ship"
	BackfillError       = "error"
)

type BackfillItem struct {
	DocumentID        uuid.UUID `json:"document_id"`
	Status            string    `json:"status"`
	ExtractedShipName string    `json:"extracted_ship_name,omitempty"`
}

type BackfillReport struct {
	Processed         int            `json:"processed"`
	FoundCertificates int            `json:"found_certificates"`
	Results           []BackfillItem `json:"results"`
}

// Backfill repairs stored documents that have no ship association by
// re-running the ship-name heuristic against their stored summary text. No
// AI call is made; this works entirely offline. Documents are processed
// sequentially and each update is atomic; a failure on one document is
// recorded and never aborts the batch.
func (s *Service) Backfill(ctx context.Context, limit int) (*BackfillReport, error) {
	if limit <= 0 {
		limit = 50
	}

	docs, err := s.repo.ListUnassigned(ctx, limit)
	if err != nil {
		return nil, err
	}

	report := &BackfillReport{
		FoundCertificates: len(docs),
		Results:           make([]BackfillItem, 0, len(docs)),
	}

	for _, doc := range docs {
		item := BackfillItem{DocumentID: doc.ID}

		shipName := extraction.DeriveShipName(doc.Summary)
		if shipName == "" {
			item.Status = BackfillNoShipName
			report.Results = append(report.Results, item)
			continue
		}
		item.ExtractedShipName = shipName

		ship, err := s.repo.FindShipByName(ctx, shipName)
		if err != nil {
			slog.Error("backfill ship lookup failed", "document_id", doc.ID, "error", err)
			item.Status = BackfillError
			report.Results = append(report.Results, item)
			continue
		}
		if ship == nil {
			item.Status = BackfillUnknownShip
			report.Results = append(report.Results, item)
			continue
		}

		if err := s.repo.AssignShip(ctx, doc.ID, ship.ID, shipName); err != nil {
			slog.Error("backfill update failed", "document_id", doc.ID, "error", err)
			item.Status = BackfillError
			report.Results = append(report.Results, item)
			continue
		}

		docID := doc.ID
		s.audit.Record(ctx, audit.Entry{
			Action:       models.ActionUpdate,
			ResourceType: "ship_document",
			ResourceID:   &docID,
			Details:      map[string]interface{}{"backfill": true, "extracted_ship_name": shipName},
		})
		item.Status = BackfillUpdated
		report.Processed++
		report.Results = append(report.Results, item)
	}

	return report, nil
}

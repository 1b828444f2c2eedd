package certificate

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harborlabs/fleetdocs/internal/models"
)

func unassignedDoc(name, summary string) *models.ShipDocument {
	return &models.ShipDocument{DocumentName: name, Summary: summary}
}

func TestBackfill(t *testing.T) {
	h := newHarness()
	shipID := h.repo.addShip("Northern Star")

	match := unassignedDoc("SMC", "Safety Management Certificate. Ship name: Northern Star. Issued 2024.")
	noName := unassignedDoc("Invoice", "Port agency invoice, services rendered, payment due in 30 days.")
	unknown := unassignedDoc("IOPP", "Certificate issued to the vessel. Name of ship: Sea Wanderer. Flag: Panama.")
	h.repo.add(match)
	h.repo.add(noName)
	h.repo.add(unknown)

	// Already assigned and summary-less documents are out of scope.
	assigned := &models.ShipDocument{ShipID: &shipID, DocumentName: "Crew List", Summary: "Ship name: Northern Star"}
	h.repo.add(assigned)
	h.repo.add(unassignedDoc("Empty", ""))

	report, err := h.svc.Backfill(context.Background(), 10)
	require.NoError(t, err)

	assert.Equal(t, 3, report.FoundCertificates)
	assert.Equal(t, 1, report.Processed)
	require.Len(t, report.Results, 3)

	byID := map[string]BackfillItem{}
	for _, item := range report.Results {
		byID[item.DocumentID.String()] = item
	}

	assert.Equal(t, BackfillUpdated, byID[match.ID.String()].Status)
	assert.Equal(t, "Northern Star", byID[match.ID.String()].ExtractedShipName)
	assert.Equal(t, BackfillNoShipName, byID[noName.ID.String()].Status)
	assert.Equal(t, BackfillUnknownShip, byID[unknown.ID.String()].Status)
	assert.Equal(t, "Sea Wanderer", byID[unknown.ID.String()].ExtractedShipName)

	// The matched document is now owned by the ship.
	updated, _ := h.repo.GetByID(context.Background(), match.ID)
	require.NotNil(t, updated.ShipID)
	assert.Equal(t, shipID, *updated.ShipID)
	require.NotNil(t, updated.ExtractedShipName)
	assert.Equal(t, "Northern Star", *updated.ExtractedShipName)

	assert.Equal(t, []string{models.ActionUpdate}, h.audit.actions())
}

func TestBackfillHonorsLimit(t *testing.T) {
	h := newHarness()
	h.repo.addShip("Northern Star")

	for i := 0; i < 5; i++ {
		h.repo.add(unassignedDoc("SMC", "Ship name: Northern Star"))
	}

	report, err := h.svc.Backfill(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, 2, report.FoundCertificates)
	assert.Equal(t, 2, report.Processed)
	assert.LessOrEqual(t, report.Processed, report.FoundCertificates)
}

func TestBackfillDefaultLimit(t *testing.T) {
	h := newHarness()
	h.repo.add(unassignedDoc("SMC", "Ship name: Northern Star"))

	report, err := h.svc.Backfill(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 1, report.FoundCertificates)
}

func TestBackfillUpdateFailureDoesNotAbortBatch(t *testing.T) {
	h := newHarness()
	h.repo.addShip("Northern Star")
	h.repo.add(unassignedDoc("SMC", "Ship name: Northern Star"))
	h.repo.add(unassignedDoc("DOC", "Vessel name: Northern Star"))
	h.repo.assignErr = errors.New("connection reset")

	report, err := h.svc.Backfill(context.Background(), 10)
	require.NoError(t, err)

	assert.Equal(t, 2, report.FoundCertificates)
	assert.Zero(t, report.Processed)
	require.Len(t, report.Results, 2)
	for _, item := range report.Results {
		assert.Equal(t, BackfillError, item.Status)
	}
}

func TestBackfillNothingToDo(t *testing.T) {
	h := newHarness()

	report, err := h.svc.Backfill(context.Background(), 10)
	require.NoError(t, err)
	assert.Zero(t, report.FoundCertificates)
	assert.Zero(t, report.Processed)
	assert.Empty(t, report.Results)
}

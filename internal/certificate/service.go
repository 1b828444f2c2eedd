package certificate

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/harborlabs/fleetdocs/internal/audit"
	"github.com/harborlabs/fleetdocs/internal/extraction"
	"github.com/harborlabs/fleetdocs/internal/fingerprint"
	"github.com/harborlabs/fleetdocs/internal/models"
	"github.com/harborlabs/fleetdocs/internal/quality"
	"github.com/harborlabs/fleetdocs/internal/storage"
)

// stagingFolder holds files whose upload is paused on a duplicate collision.
// Committed files are renamed out of it; cancelled ones are deleted.
const stagingFolder = "_staging"

// Service coordinates the upload pipeline: extraction, quality gate,
// duplicate check, and the follow-up resolution call.
type Service struct {
	repo     Repository
	analyzer extraction.Analyzer
	matcher  *fingerprint.Matcher
	gate     *quality.Gate
	storage  storage.Storage
	audit    audit.Logger
	pending  *PendingStore // optional; nil disables the server-side stash
}

func NewService(repo Repository, analyzer extraction.Analyzer, matcher *fingerprint.Matcher,
	gate *quality.Gate, store storage.Storage, auditLog audit.Logger, pending *PendingStore) *Service {
	return &Service{
		repo:     repo,
		analyzer: analyzer,
		matcher:  matcher,
		gate:     gate,
		storage:  store,
		audit:    auditLog,
		pending:  pending,
	}
}

// ProcessUpload runs one uploaded file through the pipeline. Insufficient
// extractions and duplicate collisions come back as routed outcomes, not
// errors; only collaborator failures return an error.
func (s *Service) ProcessUpload(ctx context.Context, shipID uuid.UUID, filename, mimeType string, data []byte) (*UploadOutcome, error) {
	analysis, err := s.analyzer.Analyze(ctx, filename, mimeType, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrExtractionFailed, err)
	}

	critical, all := analysis.FieldCounts()
	verdict := s.gate.Assess(quality.Metrics{
		TextLength:            analysis.RawTextLength,
		CriticalFieldsPresent: critical,
		TotalCriticalFields:   extraction.TotalCriticalFields,
		AllFieldsPresent:      all,
		TotalAllFields:        extraction.TotalAllFields,
	})

	if !verdict.Sufficient {
		// The partial analysis still goes back so the UI can pre-fill the
		// manual entry form.
		return &UploadOutcome{
			Filename:        filename,
			Status:          StatusRequiresManualInput,
			Reason:          verdict.Reason,
			Metrics:         &verdict.Metrics,
			PartialAnalysis: analysis,
		}, nil
	}

	existing, err := s.repo.ListByShip(ctx, shipID)
	if err != nil {
		return nil, err
	}

	candidates := s.matcher.FindDuplicates(analysis, existing)
	if len(candidates) > 0 {
		return s.pauseOnDuplicate(ctx, shipID, filename, mimeType, data, analysis, existing, candidates)
	}

	folder, err := s.shipFolder(ctx, shipID)
	if err != nil {
		return nil, err
	}
	if _, err := s.storage.EnsureFolder(ctx, folder); err != nil {
		slog.Warn("ensure ship folder failed", "folder", folder, "error", err)
	}
	fileID, err := s.storage.Upload(ctx, folder, filename, mimeType, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrStorageUpload, err)
	}

	doc := docFromAnalysis(shipID, analysis, fileID)
	if err := s.repo.Create(ctx, doc); err != nil {
		// The row never landed, so the uploaded file has no owner.
		if delErr := s.storage.Delete(ctx, fileID); delErr != nil {
			slog.Warn("orphaned file cleanup failed", "file_id", fileID, "error", delErr)
		}
		return nil, err
	}
	s.audit.Record(ctx, audit.Entry{
		Action:       models.ActionCreate,
		ResourceType: "ship_document",
		ResourceID:   &doc.ID,
		Details:      map[string]interface{}{"document_name": doc.DocumentName, "filename": filename},
	})

	return &UploadOutcome{Filename: filename, Status: StatusSuccess, Document: doc}, nil
}

func (s *Service) pauseOnDuplicate(ctx context.Context, shipID uuid.UUID, filename, mimeType string, data []byte,
	analysis *extraction.DocumentAnalysis, existing []models.ShipDocument, candidates []fingerprint.Candidate) (*UploadOutcome, error) {

	// Park the file in staging so the resolution call does not need the bytes
	// again. Cancel deletes it; commit renames it into the ship folder.
	if _, err := s.storage.EnsureFolder(ctx, stagingFolder); err != nil {
		slog.Warn("ensure staging folder failed", "error", err)
	}
	fileID, err := s.storage.Upload(ctx, stagingFolder, filename, mimeType, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrStorageUpload, err)
	}

	staged := &StagedUpload{FileID: fileID, Filename: filename, MimeType: mimeType}

	outcome := &UploadOutcome{
		Filename:             filename,
		Status:               StatusDuplicate,
		RequiresUserChoice:   true,
		DuplicateCertificate: findDoc(existing, candidates[0].DocumentID),
		Duplicates:           candidates,
		Analysis:             analysis,
		UploadResult:         staged,
	}

	if s.pending != nil {
		token, err := s.pending.Put(ctx, PendingContext{ShipID: shipID, Analysis: analysis, Upload: staged})
		if err != nil {
			slog.Warn("pending-upload stash unavailable, relying on client round-trip", "error", err)
		} else {
			outcome.ResolutionToken = token
		}
	}

	return outcome, nil
}

// Resolve applies the user's directive for a previously reported duplicate.
// Input is client-supplied reconstruction of server state, so everything is
// validated before any mutation.
func (s *Service) Resolve(ctx context.Context, req ResolutionRequest) (*ResolutionResult, error) {
	switch req.DuplicateResolution {
	case ResolutionCancel, ResolutionOverwrite, ResolutionKeepBoth:
	default:
		return nil, fmt.Errorf("%w: unknown duplicate_resolution %q", ErrInvalidResolution, req.DuplicateResolution)
	}

	analysis, upload, shipID := req.AnalysisResult, req.UploadResult, req.ShipID
	if req.ResolutionToken != "" && s.pending != nil {
		pc, err := s.pending.Get(ctx, req.ResolutionToken)
		if err != nil {
			slog.Warn("pending-upload lookup failed, falling back to client payload", "error", err)
		} else if pc != nil {
			analysis, upload, shipID = pc.Analysis, pc.Upload, pc.ShipID
			defer s.pending.Delete(ctx, req.ResolutionToken)
		}
	}

	if req.DuplicateResolution == ResolutionCancel {
		// Idempotent: a second cancel finds no staged file and still reports
		// cancelled. Never creates a document.
		if upload != nil && upload.FileID != "" {
			if err := s.storage.Delete(ctx, upload.FileID); err != nil {
				slog.Warn("staged file cleanup failed", "file_id", upload.FileID, "error", err)
			}
		}
		return &ResolutionResult{Status: StatusCancelled, Message: "upload cancelled, no document created"}, nil
	}

	if analysis == nil {
		return nil, fmt.Errorf("%w: analysis_result is required", ErrInvalidResolution)
	}
	if shipID == uuid.Nil {
		return nil, fmt.Errorf("%w: ship_id is required", ErrInvalidResolution)
	}
	// A document row is never created without a backing file.
	if upload == nil || upload.FileID == "" {
		return nil, fmt.Errorf("%w: upload_result with file_id is required", ErrInvalidResolution)
	}

	if req.DuplicateResolution == ResolutionOverwrite {
		if req.DuplicateTargetID == nil {
			return nil, fmt.Errorf("%w: duplicate_target_id is required for overwrite", ErrInvalidResolution)
		}
		return s.overwrite(ctx, shipID, *req.DuplicateTargetID, analysis, upload)
	}

	// keep_both: the user confirmed intent, so the duplicate check is
	// deliberately bypassed.
	doc, err := s.commitResolved(ctx, shipID, analysis, upload)
	if err != nil {
		return nil, err
	}
	return &ResolutionResult{Status: StatusSuccess, Document: doc}, nil
}

func (s *Service) overwrite(ctx context.Context, shipID, targetID uuid.UUID,
	analysis *extraction.DocumentAnalysis, upload *StagedUpload) (*ResolutionResult, error) {

	target, err := s.repo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if target == nil || target.ShipID == nil || *target.ShipID != shipID {
		return nil, fmt.Errorf("%w: document %s for ship %s", ErrTargetNotFound, targetID, shipID)
	}

	deleted, err := s.repo.Delete(ctx, targetID, shipID)
	if err != nil {
		return nil, err
	}
	if !deleted {
		return nil, fmt.Errorf("%w: document %s for ship %s", ErrTargetNotFound, targetID, shipID)
	}
	if target.FileID != "" {
		if err := s.storage.Delete(ctx, target.FileID); err != nil {
			slog.Warn("replaced file cleanup failed", "file_id", target.FileID, "error", err)
		}
	}
	s.audit.Record(ctx, audit.Entry{
		Action:       models.ActionDelete,
		ResourceType: "ship_document",
		ResourceID:   &target.ID,
		Details:      map[string]interface{}{"document_name": target.DocumentName, "reason": "overwrite"},
	})

	doc, err := s.commitResolved(ctx, shipID, analysis, upload)
	if err != nil {
		return nil, err
	}
	return &ResolutionResult{Status: StatusSuccess, Document: doc}, nil
}

func (s *Service) commitResolved(ctx context.Context, shipID uuid.UUID,
	analysis *extraction.DocumentAnalysis, upload *StagedUpload) (*models.ShipDocument, error) {

	fileID := ""
	if upload != nil {
		fileID = upload.FileID
		// Move the staged file under its final name; the file id stays valid
		// either way, so a rename failure is not fatal.
		if fileID != "" && upload.Filename != "" {
			if err := s.storage.Rename(ctx, fileID, upload.Filename); err != nil {
				slog.Warn("staged file rename failed", "file_id", fileID, "error", err)
			}
		}
	}

	doc := docFromAnalysis(shipID, analysis, fileID)
	if err := s.repo.Create(ctx, doc); err != nil {
		return nil, err
	}
	s.audit.Record(ctx, audit.Entry{
		Action:       models.ActionCreate,
		ResourceType: "ship_document",
		ResourceID:   &doc.ID,
		Details:      map[string]interface{}{"document_name": doc.DocumentName, "resolved": true},
	})
	return doc, nil
}

func (s *Service) ListByShip(ctx context.Context, shipID uuid.UUID) ([]models.ShipDocument, error) {
	return s.repo.ListByShip(ctx, shipID)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.ShipDocument, error) {
	return s.repo.GetByID(ctx, id)
}

// DeleteDocument removes a document and its backing file by explicit user
// action.
func (s *Service) DeleteDocument(ctx context.Context, id uuid.UUID) error {
	doc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if doc == nil {
		return fmt.Errorf("%w: document %s", ErrTargetNotFound, id)
	}

	if doc.FileID != "" {
		if err := s.storage.Delete(ctx, doc.FileID); err != nil {
			slog.Warn("document file cleanup failed", "file_id", doc.FileID, "error", err)
		}
	}

	if _, err := s.repo.Remove(ctx, id); err != nil {
		return err
	}
	s.audit.Record(ctx, audit.Entry{
		Action:       models.ActionDelete,
		ResourceType: "ship_document",
		ResourceID:   &doc.ID,
		Details:      map[string]interface{}{"document_name": doc.DocumentName},
	})
	return nil
}

func (s *Service) shipFolder(ctx context.Context, shipID uuid.UUID) (string, error) {
	ship, err := s.repo.GetShip(ctx, shipID)
	if err != nil {
		return "", err
	}
	if ship == nil {
		return shipID.String(), nil
	}
	return ship.Name, nil
}

func docFromAnalysis(shipID uuid.UUID, analysis *extraction.DocumentAnalysis, fileID string) *models.ShipDocument {
	doc := &models.ShipDocument{
		ID:           uuid.New(),
		ShipID:       &shipID,
		DocumentName: analysis.DocumentName,
		Category:     analysis.Category,
		FileID:       fileID,
		Summary:      analysis.Summary,
		IssueDate:    parseDate(analysis.IssueDate),
		ValidUntil:   parseDate(analysis.ValidUntil),
	}
	if analysis.DocumentNumber != "" {
		doc.DocumentNumber = &analysis.DocumentNumber
	}
	if analysis.HolderName != "" {
		doc.HolderName = &analysis.HolderName
	}
	if analysis.ShipName != "" {
		doc.ExtractedShipName = &analysis.ShipName
	}
	if doc.Category == "" {
		doc.Category = models.CategoryCertificate
	}
	return doc
}

func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}

func findDoc(docs []models.ShipDocument, id uuid.UUID) *models.ShipDocument {
	for i := range docs {
		if docs[i].ID == id {
			return &docs[i]
		}
	}
	return nil
}

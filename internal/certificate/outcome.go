package certificate

import (
	"github.com/google/uuid"

	"github.com/harborlabs/fleetdocs/internal/extraction"
	"github.com/harborlabs/fleetdocs/internal/fingerprint"
	"github.com/harborlabs/fleetdocs/internal/models"
	"github.com/harborlabs/fleetdocs/internal/quality"
)

// Upload outcome statuses. requires_manual_input and duplicate are routed
// outcomes, not errors: they go back to the client as 2xx with a status the
// UI switches on.
const (
	StatusSuccess             = "success"
	StatusDuplicate           = "duplicate"
	StatusRequiresManualInput = "requires_manual_input"
	StatusCancelled           = "cancelled"
)

// StagedUpload is the storage reference produced when a duplicate is found:
// the file is parked in the staging folder until the user resolves the
// collision. Round-tripped through the client as upload_result.
type StagedUpload struct {
	FileID   string `json:"file_id"`
	Filename string `json:"filename"`
	MimeType string `json:"mime_type"`
}

// UploadOutcome is the tagged result of processing one uploaded file.
// Exactly one of the variant fields is populated, selected by Status.
type UploadOutcome struct {
	Filename string `json:"filename"`
	Status   string `json:"status"`

	// StatusSuccess
	Document *models.ShipDocument `json:"document,omitempty"`

	// StatusDuplicate
	RequiresUserChoice   bool                          `json:"requires_user_choice,omitempty"`
	DuplicateCertificate *models.ShipDocument          `json:"duplicate_certificate,omitempty"`
	Duplicates           []fingerprint.Candidate       `json:"duplicates,omitempty"`
	Analysis             *extraction.DocumentAnalysis  `json:"analysis,omitempty"`
	UploadResult         *StagedUpload                 `json:"upload_result,omitempty"`
	ResolutionToken      string                        `json:"resolution_token,omitempty"`

	// StatusRequiresManualInput
	Reason          string                       `json:"reason,omitempty"`
	Metrics         *quality.Metrics             `json:"metrics,omitempty"`
	PartialAnalysis *extraction.DocumentAnalysis `json:"partial_analysis,omitempty"`
}

// ResolutionRequest is the follow-up call after a duplicate outcome. The
// client echoes back analysis_result and upload_result; when a resolution
// token is present and still cached server-side, the cached copy wins.
type ResolutionRequest struct {
	AnalysisResult      *extraction.DocumentAnalysis `json:"analysis_result"`
	UploadResult        *StagedUpload                `json:"upload_result"`
	ShipID              uuid.UUID                    `json:"ship_id"`
	DuplicateResolution string                       `json:"duplicate_resolution"`
	DuplicateTargetID   *uuid.UUID                   `json:"duplicate_target_id,omitempty"`
	ResolutionToken     string                       `json:"resolution_token,omitempty"`
}

const (
	ResolutionCancel    = "cancel"
	ResolutionOverwrite = "overwrite"
	ResolutionKeepBoth  = "keep_both"
)

type ResolutionResult struct {
	Status   string               `json:"status"` // cancelled | success
	Message  string               `json:"message,omitempty"`
	Document *models.ShipDocument `json:"document,omitempty"`
}

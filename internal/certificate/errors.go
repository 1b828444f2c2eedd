package certificate

import "errors"

var (
	// ErrExtractionFailed: the AI collaborator errored or timed out. Fatal to
	// the current upload; nothing is persisted.
	ErrExtractionFailed = errors.New("extraction failed")

	// ErrTargetNotFound: an overwrite resolution referenced a document that
	// does not exist or belongs to another ship.
	ErrTargetNotFound = errors.New("resolution target not found")

	// ErrInvalidResolution: malformed resolution payload. The resolution
	// endpoint reconstructs server state from client-supplied data, so it
	// validates defensively.
	ErrInvalidResolution = errors.New("invalid resolution")

	// ErrStorageUpload: file bytes could not be persisted. The document row
	// is never created without a backing file.
	ErrStorageUpload = errors.New("storage upload failed")
)

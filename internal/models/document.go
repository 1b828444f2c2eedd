package models

import (
	"time"

	"github.com/google/uuid"
)

// ShipDocument is a stored certificate, survey report, or personal document.
// ShipID is nullable: documents stored without a recognized ship association
// are repaired later by the backfill scanner.
type ShipDocument struct {
	ID                uuid.UUID  `json:"id" db:"id"`
	ShipID            *uuid.UUID `json:"ship_id,omitempty" db:"ship_id"`
	DocumentName      string     `json:"document_name" db:"document_name"`
	DocumentNumber    *string    `json:"document_number,omitempty" db:"document_number"`
	IssueDate         *time.Time `json:"issue_date,omitempty" db:"issue_date"`
	ValidUntil        *time.Time `json:"valid_until,omitempty" db:"valid_until"`
	HolderName        *string    `json:"holder_name,omitempty" db:"holder_name"`
	Category          string     `json:"category" db:"category"`
	FileID            string     `json:"file_id,omitempty" db:"file_id"`
	Summary           string     `json:"-" db:"summary"`
	ExtractedShipName *string    `json:"extracted_ship_name,omitempty" db:"extracted_ship_name"`
	CreatedAt         time.Time  `json:"created_at" db:"created_at"`
}

const (
	CategoryCertificate = "certificate"
	CategoryOther       = "other"
)

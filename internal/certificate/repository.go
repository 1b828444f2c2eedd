package certificate

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/harborlabs/fleetdocs/internal/models"
)

// Repository is the persistence surface the coordinator and the backfill
// scanner need. Tests swap in an in-memory fake.
type Repository interface {
	ListByShip(ctx context.Context, shipID uuid.UUID) ([]models.ShipDocument, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.ShipDocument, error)
	Create(ctx context.Context, doc *models.ShipDocument) error
	Delete(ctx context.Context, id uuid.UUID, shipID uuid.UUID) (bool, error)
	Remove(ctx context.Context, id uuid.UUID) (bool, error)
	ListUnassigned(ctx context.Context, limit int) ([]models.ShipDocument, error)
	AssignShip(ctx context.Context, docID, shipID uuid.UUID, shipName string) error
	GetShip(ctx context.Context, id uuid.UUID) (*models.Ship, error)
	FindShipByName(ctx context.Context, name string) (*models.Ship, error)
}

const docColumns = `id, ship_id, document_name, document_number, issue_date, valid_until,
       holder_name, category, file_id, summary, extracted_ship_name, created_at`

type PgRepository struct {
	db *pgxpool.Pool
}

func NewPgRepository(db *pgxpool.Pool) *PgRepository {
	return &PgRepository{db: db}
}

func (r *PgRepository) ListByShip(ctx context.Context, shipID uuid.UUID) ([]models.ShipDocument, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+docColumns+` FROM ship_documents WHERE ship_id = $1 ORDER BY created_at DESC`,
		shipID,
	)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()
	return scanDocs(rows)
}

func (r *PgRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.ShipDocument, error) {
	var d models.ShipDocument
	err := r.db.QueryRow(ctx,
		`SELECT `+docColumns+` FROM ship_documents WHERE id = $1`, id,
	).Scan(docFields(&d)...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}
	return &d, nil
}

func (r *PgRepository) Create(ctx context.Context, doc *models.ShipDocument) error {
	if doc.ID == uuid.Nil {
		doc.ID = uuid.New()
	}
	err := r.db.QueryRow(ctx,
		`INSERT INTO ship_documents (id, ship_id, document_name, document_number, issue_date, valid_until,
		                             holder_name, category, file_id, summary, extracted_ship_name)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING created_at`,
		doc.ID, doc.ShipID, doc.DocumentName, doc.DocumentNumber, doc.IssueDate, doc.ValidUntil,
		doc.HolderName, doc.Category, doc.FileID, doc.Summary, doc.ExtractedShipName,
	).Scan(&doc.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

// Delete removes a document only when it belongs to the given ship. Returns
// false when nothing matched, so overwrite resolutions can surface a 404
// instead of silently deleting across ships.
func (r *PgRepository) Delete(ctx context.Context, id uuid.UUID, shipID uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx,
		"DELETE FROM ship_documents WHERE id = $1 AND ship_id = $2", id, shipID)
	if err != nil {
		return false, fmt.Errorf("delete document: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// Remove deletes a document regardless of ship ownership, for explicit
// admin deletes.
func (r *PgRepository) Remove(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx, "DELETE FROM ship_documents WHERE id = $1", id)
	if err != nil {
		return false, fmt.Errorf("delete document: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PgRepository) ListUnassigned(ctx context.Context, limit int) ([]models.ShipDocument, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+docColumns+` FROM ship_documents
		 WHERE ship_id IS NULL AND summary <> ''
		 ORDER BY created_at ASC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list unassigned documents: %w", err)
	}
	defer rows.Close()
	return scanDocs(rows)
}

func (r *PgRepository) AssignShip(ctx context.Context, docID, shipID uuid.UUID, shipName string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE ship_documents SET ship_id = $1, extracted_ship_name = $2 WHERE id = $3`,
		shipID, shipName, docID,
	)
	if err != nil {
		return fmt.Errorf("assign ship: %w", err)
	}
	return nil
}

func (r *PgRepository) GetShip(ctx context.Context, id uuid.UUID) (*models.Ship, error) {
	var s models.Ship
	err := r.db.QueryRow(ctx,
		`SELECT id, company_id, name, imo_number, flag, created_at FROM ships WHERE id = $1`, id,
	).Scan(&s.ID, &s.CompanyID, &s.Name, &s.IMONumber, &s.Flag, &s.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get ship: %w", err)
	}
	return &s, nil
}

func (r *PgRepository) FindShipByName(ctx context.Context, name string) (*models.Ship, error) {
	var s models.Ship
	err := r.db.QueryRow(ctx,
		`SELECT id, company_id, name, imo_number, flag, created_at
		 FROM ships WHERE lower(name) = lower($1)`,
		name,
	).Scan(&s.ID, &s.CompanyID, &s.Name, &s.IMONumber, &s.Flag, &s.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find ship by name: %w", err)
	}
	return &s, nil
}

func scanDocs(rows pgx.Rows) ([]models.ShipDocument, error) {
	var docs []models.ShipDocument
	for rows.Next() {
		var d models.ShipDocument
		if err := rows.Scan(docFields(&d)...); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

func docFields(d *models.ShipDocument) []interface{} {
	return []interface{}{
		&d.ID, &d.ShipID, &d.DocumentName, &d.DocumentNumber, &d.IssueDate, &d.ValidUntil,
		&d.HolderName, &d.Category, &d.FileID, &d.Summary, &d.ExtractedShipName, &d.CreatedAt,
	}
}

// Package fleet holds the plain CRUD around the core pipeline: companies,
// their ships, and ship crew.
package fleet

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/harborlabs/fleetdocs/internal/audit"
	"github.com/harborlabs/fleetdocs/internal/models"
)

type Service struct {
	db    *pgxpool.Pool
	audit audit.Logger
}

func NewService(db *pgxpool.Pool, auditLog audit.Logger) *Service {
	return &Service{db: db, audit: auditLog}
}

func (s *Service) CreateCompany(ctx context.Context, name string) (*models.Company, error) {
	c := &models.Company{ID: uuid.New(), Name: name}
	err := s.db.QueryRow(ctx,
		`INSERT INTO companies (id, name) VALUES ($1, $2) RETURNING created_at`,
		c.ID, c.Name,
	).Scan(&c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert company: %w", err)
	}
	s.record(ctx, models.ActionCreate, "company", c.ID, map[string]interface{}{"name": c.Name})
	return c, nil
}

func (s *Service) GetCompany(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	var c models.Company
	err := s.db.QueryRow(ctx,
		`SELECT id, name, created_at FROM companies WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get company: %w", err)
	}
	return &c, nil
}

func (s *Service) ListCompanies(ctx context.Context, limit, offset int) ([]models.Company, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, name, created_at FROM companies ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()

	var companies []models.Company
	for rows.Next() {
		var c models.Company
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		companies = append(companies, c)
	}
	return companies, rows.Err()
}

func (s *Service) DeleteCompany(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.Exec(ctx, "DELETE FROM companies WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete company: %w", err)
	}
	s.record(ctx, models.ActionDelete, "company", id, nil)
	return nil
}

type CreateShipRequest struct {
	CompanyID uuid.UUID `json:"company_id"`
	Name      string    `json:"name"`
	IMONumber string    `json:"imo_number"`
	Flag      string    `json:"flag"`
}

func (s *Service) CreateShip(ctx context.Context, req CreateShipRequest) (*models.Ship, error) {
	ship := &models.Ship{
		ID:        uuid.New(),
		CompanyID: req.CompanyID,
		Name:      req.Name,
		IMONumber: req.IMONumber,
		Flag:      req.Flag,
	}
	err := s.db.QueryRow(ctx,
		`INSERT INTO ships (id, company_id, name, imo_number, flag)
		 VALUES ($1, $2, $3, $4, $5) RETURNING created_at`,
		ship.ID, ship.CompanyID, ship.Name, ship.IMONumber, ship.Flag,
	).Scan(&ship.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert ship: %w", err)
	}
	s.record(ctx, models.ActionCreate, "ship", ship.ID, map[string]interface{}{"name": ship.Name})
	return ship, nil
}

func (s *Service) GetShip(ctx context.Context, id uuid.UUID) (*models.Ship, error) {
	var ship models.Ship
	err := s.db.QueryRow(ctx,
		`SELECT id, company_id, name, imo_number, flag, created_at FROM ships WHERE id = $1`, id,
	).Scan(&ship.ID, &ship.CompanyID, &ship.Name, &ship.IMONumber, &ship.Flag, &ship.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get ship: %w", err)
	}
	return &ship, nil
}

func (s *Service) ListShips(ctx context.Context, companyID *uuid.UUID, limit, offset int) ([]models.Ship, error) {
	query := `SELECT id, company_id, name, imo_number, flag, created_at FROM ships`
	args := []interface{}{}
	if companyID != nil {
		query += ` WHERE company_id = $1 ORDER BY name LIMIT $2 OFFSET $3`
		args = append(args, *companyID, limit, offset)
	} else {
		query += ` ORDER BY name LIMIT $1 OFFSET $2`
		args = append(args, limit, offset)
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list ships: %w", err)
	}
	defer rows.Close()

	var ships []models.Ship
	for rows.Next() {
		var ship models.Ship
		if err := rows.Scan(&ship.ID, &ship.CompanyID, &ship.Name, &ship.IMONumber, &ship.Flag, &ship.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan ship: %w", err)
		}
		ships = append(ships, ship)
	}
	return ships, rows.Err()
}

func (s *Service) DeleteShip(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.Exec(ctx, "DELETE FROM ships WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete ship: %w", err)
	}
	s.record(ctx, models.ActionDelete, "ship", id, nil)
	return nil
}

type CreateCrewRequest struct {
	ShipID         uuid.UUID  `json:"ship_id"`
	FullName       string     `json:"full_name"`
	Rank           string     `json:"rank"`
	PassportNumber string     `json:"passport_number"`
	PassportExpiry *time.Time `json:"passport_expiry,omitempty"`
}

func (s *Service) CreateCrewMember(ctx context.Context, req CreateCrewRequest) (*models.CrewMember, error) {
	m := &models.CrewMember{
		ID:             uuid.New(),
		ShipID:         req.ShipID,
		FullName:       req.FullName,
		Rank:           req.Rank,
		PassportNumber: req.PassportNumber,
		PassportExpiry: req.PassportExpiry,
	}
	err := s.db.QueryRow(ctx,
		`INSERT INTO crew_members (id, ship_id, full_name, rank, passport_number, passport_expiry)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING created_at`,
		m.ID, m.ShipID, m.FullName, m.Rank, m.PassportNumber, m.PassportExpiry,
	).Scan(&m.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert crew member: %w", err)
	}
	s.record(ctx, models.ActionCreate, "crew_member", m.ID, map[string]interface{}{"full_name": m.FullName})
	return m, nil
}

func (s *Service) GetCrewMember(ctx context.Context, id uuid.UUID) (*models.CrewMember, error) {
	var m models.CrewMember
	err := s.db.QueryRow(ctx,
		`SELECT id, ship_id, full_name, rank, passport_number, passport_expiry, created_at
		 FROM crew_members WHERE id = $1`, id,
	).Scan(&m.ID, &m.ShipID, &m.FullName, &m.Rank, &m.PassportNumber, &m.PassportExpiry, &m.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get crew member: %w", err)
	}
	return &m, nil
}

func (s *Service) ListCrew(ctx context.Context, shipID uuid.UUID) ([]models.CrewMember, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, ship_id, full_name, rank, passport_number, passport_expiry, created_at
		 FROM crew_members WHERE ship_id = $1 ORDER BY full_name`,
		shipID,
	)
	if err != nil {
		return nil, fmt.Errorf("list crew: %w", err)
	}
	defer rows.Close()

	var crew []models.CrewMember
	for rows.Next() {
		var m models.CrewMember
		if err := rows.Scan(&m.ID, &m.ShipID, &m.FullName, &m.Rank, &m.PassportNumber, &m.PassportExpiry, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan crew member: %w", err)
		}
		crew = append(crew, m)
	}
	return crew, rows.Err()
}

func (s *Service) DeleteCrewMember(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.Exec(ctx, "DELETE FROM crew_members WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete crew member: %w", err)
	}
	s.record(ctx, models.ActionDelete, "crew_member", id, nil)
	return nil
}

func (s *Service) record(ctx context.Context, action, resourceType string, id uuid.UUID, details map[string]interface{}) {
	s.audit.Record(ctx, audit.Entry{
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   &id,
		Details:      details,
	})
}

package models

import (
	"time"

	"github.com/google/uuid"
)

type Company struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type Ship struct {
	ID        uuid.UUID `json:"id" db:"id"`
	CompanyID uuid.UUID `json:"company_id" db:"company_id"`
	Name      string    `json:"name" db:"name"`
	IMONumber string    `json:"imo_number,omitempty" db:"imo_number"`
	Flag      string    `json:"flag,omitempty" db:"flag"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type CrewMember struct {
	ID             uuid.UUID  `json:"id" db:"id"`
	ShipID         uuid.UUID  `json:"ship_id" db:"ship_id"`
	FullName       string     `json:"full_name" db:"full_name"`
	Rank           string     `json:"rank,omitempty" db:"rank"`
	PassportNumber string     `json:"passport_number,omitempty" db:"passport_number"`
	PassportExpiry *time.Time `json:"passport_expiry,omitempty" db:"passport_expiry"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
}

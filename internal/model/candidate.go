package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultParty is assigned to candidates created without a party.
const DefaultParty = "Independent"

// Candidate stands in exactly one election and carries its vote tally.
type Candidate struct {
	ID         uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Name       string    `json:"name" gorm:"size:255;not null"`
	Party      string    `json:"party" gorm:"size:255;not null;default:'Independent'"`
	Bio        string    `json:"bio" gorm:"type:text"`
	Photo      string    `json:"photo" gorm:"size:1024"`
	ElectionID uuid.UUID `json:"election" gorm:"type:char(36);not null;index"`
	Votes      int64     `json:"votes" gorm:"not null;default:0"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// BeforeCreate sets UUID and default party before creating the record.
func (c *Candidate) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.Party == "" {
		c.Party = DefaultParty
	}
	return nil
}

// CandidateDetail is the public profile of a candidate, without tally or timestamps.
type CandidateDetail struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Party      string    `json:"party"`
	Bio        string    `json:"bio"`
	Photo      string    `json:"photo"`
	ElectionID uuid.UUID `json:"election"`
}

// Detail returns the public profile of c.
func (c *Candidate) Detail() CandidateDetail {
	return CandidateDetail{
		ID:         c.ID,
		Name:       c.Name,
		Party:      c.Party,
		Bio:        c.Bio,
		Photo:      c.Photo,
		ElectionID: c.ElectionID,
	}
}

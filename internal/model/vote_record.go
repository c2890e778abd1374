package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VoteRecord is one entry of a user's voted-elections list.
// The composite unique index allows a single ballot per user and election.
type VoteRecord struct {
	ID         uuid.UUID `json:"-" gorm:"type:char(36);primaryKey"`
	UserID     uuid.UUID `json:"-" gorm:"type:char(36);not null;uniqueIndex:idx_vote_user_election"`
	ElectionID uuid.UUID `json:"election" gorm:"type:char(36);not null;uniqueIndex:idx_vote_user_election;index"`
	VotedAt    time.Time `json:"voted_at" gorm:"not null"`
}

// BeforeCreate sets UUID before creating the record.
func (v *VoteRecord) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

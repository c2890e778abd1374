package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role is the access level of a user.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleVoter Role = "voter"
)

// User represents an admin or a voter.
type User struct {
	ID           uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Name         string    `json:"name" gorm:"size:255;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"` // stored lower-cased
	PasswordHash string    `json:"-" gorm:"size:255;not null"`                 // Never expose in JSON
	Role         Role      `json:"role" gorm:"type:varchar(10);not null;default:'voter';index"`
	IsVerified   bool      `json:"is_verified" gorm:"default:false;index"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	VotedElections []VoteRecord `json:"voted_elections" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// BeforeCreate sets UUID before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// HasVotedIn scans the voted-elections list for electionID.
func (u *User) HasVotedIn(electionID uuid.UUID) bool {
	for _, v := range u.VotedElections {
		if v.ElectionID == electionID {
			return true
		}
	}
	return false
}

// UserSummary is the minimal user view returned on login and after voting.
type UserSummary struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Role Role      `json:"role"`
}

// Summary returns the minimal view of u.
func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Role: u.Role}
}

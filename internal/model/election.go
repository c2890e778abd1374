package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Election is a voting event with a fixed window.
type Election struct {
	ID          uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Title       string    `json:"title" gorm:"size:255;not null"`
	Description string    `json:"description" gorm:"type:text"`
	StartDate   time.Time `json:"start_date" gorm:"not null;index"`
	EndDate     time.Time `json:"end_date" gorm:"not null"`
	IsActive    bool      `json:"is_active" gorm:"default:true"`
	CreatedBy   uuid.UUID `json:"created_by" gorm:"type:char(36);index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// CandidateIDs is derived from Candidates after a query.
	CandidateIDs []uuid.UUID `json:"candidates" gorm:"-"`

	// Relations
	Candidates []Candidate `json:"-" gorm:"foreignKey:ElectionID"`
}

// BeforeCreate sets UUID before creating the record.
func (e *Election) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// AfterFind flattens preloaded candidates into CandidateIDs.
func (e *Election) AfterFind(tx *gorm.DB) error {
	e.syncCandidateIDs()
	return nil
}

func (e *Election) syncCandidateIDs() {
	ids := make([]uuid.UUID, 0, len(e.Candidates))
	for _, c := range e.Candidates {
		ids = append(ids, c.ID)
	}
	e.CandidateIDs = ids
}

// ValidWindow reports whether start strictly precedes end.
func ValidWindow(start, end time.Time) bool {
	return start.Before(end)
}

// InWindow reports whether now falls inside [StartDate, EndDate].
func (e *Election) InWindow(now time.Time) bool {
	return !now.Before(e.StartDate) && !now.After(e.EndDate)
}

// ClosedAt reports whether the window ended before now.
func (e *Election) ClosedAt(now time.Time) bool {
	return now.After(e.EndDate)
}

// OpenAt reports whether votes may be cast at now.
func (e *Election) OpenAt(now time.Time) bool {
	return e.IsActive && e.InWindow(now)
}

package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ballotbox/internal/model"
)

// CandidateRepository defines candidate persistence operations.
type CandidateRepository interface {
	Create(ctx context.Context, candidate *model.Candidate) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Candidate, error)
	ListByElection(ctx context.Context, electionID uuid.UUID) ([]model.Candidate, error)
	ListByVotes(ctx context.Context, electionID uuid.UUID) ([]model.Candidate, error)
}

type candidateRepository struct {
	db *gorm.DB
}

// NewCandidateRepository creates a new candidate repository.
func NewCandidateRepository(db *gorm.DB) CandidateRepository {
	return &candidateRepository{db: db}
}

// Create creates a new candidate.
func (r *candidateRepository) Create(ctx context.Context, candidate *model.Candidate) error {
	return r.db.WithContext(ctx).Create(candidate).Error
}

// FindByID finds a candidate by ID.
func (r *candidateRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Candidate, error) {
	var candidate model.Candidate
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&candidate).Error; err != nil {
		return nil, err
	}
	return &candidate, nil
}

// ListByElection lists candidates of an election in creation order.
func (r *candidateRepository) ListByElection(ctx context.Context, electionID uuid.UUID) ([]model.Candidate, error) {
	var candidates []model.Candidate
	if err := r.db.WithContext(ctx).
		Where("election_id = ?", electionID).
		Order("created_at ASC").
		Find(&candidates).Error; err != nil {
		return nil, err
	}
	return candidates, nil
}

// ListByVotes lists candidates of an election by descending tally; ties keep creation order.
func (r *candidateRepository) ListByVotes(ctx context.Context, electionID uuid.UUID) ([]model.Candidate, error) {
	var candidates []model.Candidate
	if err := r.db.WithContext(ctx).
		Where("election_id = ?", electionID).
		Order("votes DESC").
		Order("created_at ASC").
		Find(&candidates).Error; err != nil {
		return nil, err
	}
	return candidates, nil
}

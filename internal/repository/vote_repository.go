package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ballotbox/internal/model"
)

// VoteRepository defines ballot persistence operations.
type VoteRepository interface {
	CreateRecord(ctx context.Context, record *model.VoteRecord) error
	IncrementTally(ctx context.Context, candidateID, electionID uuid.UUID) error
	CountByElection(ctx context.Context, electionID uuid.UUID) (int64, error)
	// Transaction methods
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo VoteRepository) error) error
}

type voteRepository struct {
	db *gorm.DB
}

// NewVoteRepository creates a new vote repository.
func NewVoteRepository(db *gorm.DB) VoteRepository {
	return &voteRepository{db: db}
}

// CreateRecord inserts a ballot. A second ballot for the same pair fails
// with gorm.ErrDuplicatedKey.
func (r *voteRepository) CreateRecord(ctx context.Context, record *model.VoteRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// IncrementTally adds exactly one vote to a candidate of the given election.
// It returns gorm.ErrRecordNotFound when no such candidate exists.
func (r *voteRepository) IncrementTally(ctx context.Context, candidateID, electionID uuid.UUID) error {
	res := r.db.WithContext(ctx).Model(&model.Candidate{}).
		Where("id = ? AND election_id = ?", candidateID, electionID).
		UpdateColumn("votes", gorm.Expr("votes + ?", 1))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountByElection counts ballots cast in an election.
func (r *voteRepository) CountByElection(ctx context.Context, electionID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.VoteRecord{}).
		Where("election_id = ?", electionID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// WithTransaction executes a function within a database transaction.
func (r *voteRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo VoteRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &voteRepository{db: tx}
		return fn(ctx, txRepo)
	})
}

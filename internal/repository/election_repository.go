package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ballotbox/internal/model"
)

// ElectionRepository defines election persistence operations.
type ElectionRepository interface {
	Create(ctx context.Context, election *model.Election) error
	Update(ctx context.Context, election *model.Election) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Election, error)
	List(ctx context.Context) ([]model.Election, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type electionRepository struct {
	db *gorm.DB
}

// NewElectionRepository creates a new election repository.
func NewElectionRepository(db *gorm.DB) ElectionRepository {
	return &electionRepository{db: db}
}

// candidateRefs preloads only what is needed to build the candidate id list.
func candidateRefs(db *gorm.DB) *gorm.DB {
	return db.Select("id", "election_id", "created_at").Order("created_at ASC")
}

// Create creates a new election.
func (r *electionRepository) Create(ctx context.Context, election *model.Election) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(election).Error
}

// Update saves every election column; candidates are left untouched.
func (r *electionRepository) Update(ctx context.Context, election *model.Election) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(election).Error
}

// FindByID finds an election by ID.
func (r *electionRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Election, error) {
	var election model.Election
	if err := r.db.WithContext(ctx).Preload("Candidates", candidateRefs).
		Where("id = ?", id).First(&election).Error; err != nil {
		return nil, err
	}
	return &election, nil
}

// List lists all elections, most recent start date first.
func (r *electionRepository) List(ctx context.Context) ([]model.Election, error) {
	var elections []model.Election
	if err := r.db.WithContext(ctx).Preload("Candidates", candidateRefs).
		Order("start_date DESC").
		Find(&elections).Error; err != nil {
		return nil, err
	}
	return elections, nil
}

// Delete removes an election with its candidates and ballots in one transaction.
func (r *electionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// children first, candidates reference the election
		if err := tx.Where("election_id = ?", id).Delete(&model.VoteRecord{}).Error; err != nil {
			return err
		}
		if err := tx.Where("election_id = ?", id).Delete(&model.Candidate{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&model.Election{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

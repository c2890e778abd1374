package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ballotbox/internal/cache"
	"ballotbox/internal/errors"
	"ballotbox/internal/logger"
	"ballotbox/internal/model"
	"ballotbox/internal/repository"
)

// CreateElectionInput carries the fields of a new election.
type CreateElectionInput struct {
	Title       string
	Description string
	StartDate   time.Time
	EndDate     time.Time
	CreatedBy   uuid.UUID
}

// ElectionPatch is a partial update; nil fields are left unchanged.
type ElectionPatch struct {
	Title       *string
	Description *string
	StartDate   *time.Time
	EndDate     *time.Time
	IsActive    *bool
}

// ElectionService manages the election registry.
type ElectionService interface {
	CreateElection(ctx context.Context, in CreateElectionInput) (*model.Election, error)
	ListElections(ctx context.Context) ([]model.Election, error)
	GetElection(ctx context.Context, id uuid.UUID) (*model.Election, error)
	UpdateElection(ctx context.Context, id uuid.UUID, patch ElectionPatch) (*model.Election, error)
	DeleteElection(ctx context.Context, id uuid.UUID) error
}

type electionService struct {
	repo  repository.ElectionRepository
	cache *cache.Client
}

// NewElectionService creates a new election service.
func NewElectionService(repo repository.ElectionRepository, cache *cache.Client) ElectionService {
	return &electionService{repo: repo, cache: cache}
}

// CreateElection validates the window and persists a new active election.
func (s *electionService) CreateElection(ctx context.Context, in CreateElectionInput) (*model.Election, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", errors.ErrInvalidInput)
	}
	if !model.ValidWindow(in.StartDate, in.EndDate) {
		return nil, errors.ErrInvalidDateRange
	}

	election := &model.Election{
		ID:           uuid.New(),
		Title:        title,
		Description:  in.Description,
		StartDate:    in.StartDate,
		EndDate:      in.EndDate,
		IsActive:     true,
		CreatedBy:    in.CreatedBy,
		CandidateIDs: []uuid.UUID{},
	}
	if err := s.repo.Create(ctx, election); err != nil {
		return nil, fmt.Errorf("create election: %w", err)
	}

	logger.Log.Info("election created", "election_id", election.ID, "created_by", in.CreatedBy)
	return election, nil
}

// ListElections returns every election, most recent start first.
func (s *electionService) ListElections(ctx context.Context) ([]model.Election, error) {
	elections, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list elections: %w", err)
	}
	return elections, nil
}

// GetElection retrieves one election with its candidate ids.
func (s *electionService) GetElection(ctx context.Context, id uuid.UUID) (*model.Election, error) {
	election, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrElectionNotFound
		}
		return nil, fmt.Errorf("find election: %w", err)
	}
	return election, nil
}

// UpdateElection merges patch into the stored election. The merged window
// must still satisfy start < end.
func (s *electionService) UpdateElection(ctx context.Context, id uuid.UUID, patch ElectionPatch) (*model.Election, error) {
	election, err := s.GetElection(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title cannot be empty", errors.ErrInvalidInput)
		}
		election.Title = title
	}
	if patch.Description != nil {
		election.Description = *patch.Description
	}
	if patch.StartDate != nil {
		election.StartDate = *patch.StartDate
	}
	if patch.EndDate != nil {
		election.EndDate = *patch.EndDate
	}
	if patch.IsActive != nil {
		election.IsActive = *patch.IsActive
	}

	if !model.ValidWindow(election.StartDate, election.EndDate) {
		return nil, errors.ErrInvalidDateRange
	}

	if err := s.repo.Update(ctx, election); err != nil {
		return nil, fmt.Errorf("update election: %w", err)
	}
	_ = s.cache.Delete(ctx, resultsCacheKey(id))

	return election, nil
}

// DeleteElection removes the election together with its candidates and ballots.
func (s *electionService) DeleteElection(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return errors.ErrElectionNotFound
		}
		return fmt.Errorf("delete election: %w", err)
	}
	_ = s.cache.Delete(ctx, resultsCacheKey(id))

	logger.Log.Info("election deleted", "election_id", id)
	return nil
}

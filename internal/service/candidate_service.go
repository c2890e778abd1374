package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ballotbox/internal/cache"
	"ballotbox/internal/errors"
	"ballotbox/internal/model"
	"ballotbox/internal/repository"
)

// AddCandidateInput carries the fields of a new candidate.
type AddCandidateInput struct {
	Name       string
	Party      string
	Bio        string
	Photo      string
	ElectionID uuid.UUID
}

// CandidateService manages the candidate registry.
type CandidateService interface {
	AddCandidate(ctx context.Context, in AddCandidateInput) (*model.Candidate, error)
	ListCandidatesByElection(ctx context.Context, electionID uuid.UUID) ([]model.Candidate, error)
	GetCandidateDetail(ctx context.Context, id uuid.UUID) (*model.CandidateDetail, error)
}

type candidateService struct {
	electionRepo  repository.ElectionRepository
	candidateRepo repository.CandidateRepository
	cache         *cache.Client
}

// NewCandidateService creates a new candidate service.
func NewCandidateService(electionRepo repository.ElectionRepository, candidateRepo repository.CandidateRepository, cache *cache.Client) CandidateService {
	return &candidateService{
		electionRepo:  electionRepo,
		candidateRepo: candidateRepo,
		cache:         cache,
	}
}

func (s *candidateService) findElection(ctx context.Context, id uuid.UUID) (*model.Election, error) {
	election, err := s.electionRepo.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrElectionNotFound
		}
		return nil, fmt.Errorf("find election: %w", err)
	}
	return election, nil
}

// AddCandidate persists a candidate in an existing election. The election's
// candidate list is the set of candidates referencing it, so creating the
// row is what appends it.
func (s *candidateService) AddCandidate(ctx context.Context, in AddCandidateInput) (*model.Candidate, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", errors.ErrInvalidInput)
	}

	election, err := s.findElection(ctx, in.ElectionID)
	if err != nil {
		return nil, err
	}

	party := strings.TrimSpace(in.Party)
	if party == "" {
		party = model.DefaultParty
	}

	candidate := &model.Candidate{
		ID:         uuid.New(),
		Name:       name,
		Party:      party,
		Bio:        in.Bio,
		Photo:      in.Photo,
		ElectionID: election.ID,
	}
	if err := s.candidateRepo.Create(ctx, candidate); err != nil {
		return nil, fmt.Errorf("create candidate: %w", err)
	}
	_ = s.cache.Delete(ctx, resultsCacheKey(election.ID))

	return candidate, nil
}

// ListCandidatesByElection lists the candidates of an existing election.
func (s *candidateService) ListCandidatesByElection(ctx context.Context, electionID uuid.UUID) ([]model.Candidate, error) {
	if _, err := s.findElection(ctx, electionID); err != nil {
		return nil, err
	}
	candidates, err := s.candidateRepo.ListByElection(ctx, electionID)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	return candidates, nil
}

// GetCandidateDetail returns the public profile of a candidate.
func (s *candidateService) GetCandidateDetail(ctx context.Context, id uuid.UUID) (*model.CandidateDetail, error) {
	candidate, err := s.candidateRepo.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrCandidateNotFound
		}
		return nil, fmt.Errorf("find candidate: %w", err)
	}
	detail := candidate.Detail()
	return &detail, nil
}

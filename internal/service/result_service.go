package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"ballotbox/internal/cache"
	"ballotbox/internal/errors"
	"ballotbox/internal/model"
	"ballotbox/internal/repository"
)

const resultsCacheTTL = 30 * time.Second

func resultsCacheKey(electionID uuid.UUID) string {
	return fmt.Sprintf("results:%s", electionID.String())
}

// CandidateResult is one row of an election report.
type CandidateResult struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Party string    `json:"party"`
	Votes int64     `json:"votes"`
	// Share is the percentage of all votes in the election, two decimals.
	Share string `json:"share"`
}

// ElectionResults is the tally report of an election.
type ElectionResults struct {
	ElectionID uuid.UUID         `json:"election_id"`
	Election   string            `json:"election"`
	StartDate  time.Time         `json:"start_date"`
	EndDate    time.Time         `json:"end_date"`
	TotalVotes int64             `json:"total_votes"`
	Voters     int64             `json:"voters"`
	Candidates []CandidateResult `json:"candidates"`
}

// ResultService aggregates candidate tallies.
type ResultService interface {
	GetResults(ctx context.Context, electionID uuid.UUID) (*ElectionResults, error)
}

type resultService struct {
	electionRepo  repository.ElectionRepository
	candidateRepo repository.CandidateRepository
	voteRepo      repository.VoteRepository
	cache         *cache.Client
	clock         *Clock
}

// NewResultService creates a new result service.
func NewResultService(
	electionRepo repository.ElectionRepository,
	candidateRepo repository.CandidateRepository,
	voteRepo repository.VoteRepository,
	cache *cache.Client,
	clock *Clock,
) ResultService {
	return &resultService{
		electionRepo:  electionRepo,
		candidateRepo: candidateRepo,
		voteRepo:      voteRepo,
		cache:         cache,
		clock:         clock,
	}
}

// GetResults returns the candidates of an election sorted by descending
// tally, ties in creation order. Only reports of closed elections are cached;
// a report read while ballots are still accepted could otherwise outlive the
// invalidation of a concurrent vote.
func (s *resultService) GetResults(ctx context.Context, electionID uuid.UUID) (*ElectionResults, error) {
	var cached ElectionResults
	if s.cache.GetJSON(ctx, resultsCacheKey(electionID), &cached) {
		return &cached, nil
	}

	election, err := s.electionRepo.FindByID(ctx, electionID)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrElectionNotFound
		}
		return nil, fmt.Errorf("find election: %w", err)
	}

	candidates, err := s.candidateRepo.ListByVotes(ctx, electionID)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}

	voters, err := s.voteRepo.CountByElection(ctx, electionID)
	if err != nil {
		return nil, fmt.Errorf("count ballots: %w", err)
	}

	var total int64
	for _, c := range candidates {
		total += c.Votes
	}

	rows := make([]CandidateResult, 0, len(candidates))
	for _, c := range candidates {
		rows = append(rows, CandidateResult{
			ID:    c.ID,
			Name:  c.Name,
			Party: c.Party,
			Votes: c.Votes,
			Share: share(c.Votes, total),
		})
	}

	results := &ElectionResults{
		ElectionID: election.ID,
		Election:   election.Title,
		StartDate:  election.StartDate,
		EndDate:    election.EndDate,
		TotalVotes: total,
		Voters:     voters,
		Candidates: rows,
	}
	if cacheable(election, s.clock.Now()) {
		_ = s.cache.SetJSON(ctx, resultsCacheKey(electionID), results, resultsCacheTTL)
	}

	return results, nil
}

func cacheable(election *model.Election, now time.Time) bool {
	return election.ClosedAt(now)
}

func share(votes, total int64) string {
	if total == 0 {
		return "0"
	}
	return decimal.NewFromInt(votes).
		Mul(decimal.NewFromInt(100)).
		DivRound(decimal.NewFromInt(total), 2).
		String()
}

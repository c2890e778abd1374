package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ballotbox/internal/cache"
	"ballotbox/internal/errors"
	"ballotbox/internal/logger"
	"ballotbox/internal/metrics"
	"ballotbox/internal/model"
	"ballotbox/internal/repository"
)

// VoteReceipt is returned after a successful vote.
type VoteReceipt struct {
	Candidate *model.Candidate `json:"candidate"`
	User      *model.User      `json:"user"`
}

// VoteService runs the vote eligibility and tally workflow.
type VoteService interface {
	CastVote(ctx context.Context, userID, candidateID, electionID uuid.UUID) (*VoteReceipt, error)
	CheckVote(ctx context.Context, userID, electionID uuid.UUID) (bool, error)
}

type voteService struct {
	userRepo      repository.UserRepository
	electionRepo  repository.ElectionRepository
	candidateRepo repository.CandidateRepository
	voteRepo      repository.VoteRepository
	cache         *cache.Client
	clock         *Clock
	// Mutex map for per-(user, election) locking
	ballotMutexes sync.Map
}

// NewVoteService creates a new vote service.
func NewVoteService(
	userRepo repository.UserRepository,
	electionRepo repository.ElectionRepository,
	candidateRepo repository.CandidateRepository,
	voteRepo repository.VoteRepository,
	cache *cache.Client,
	clock *Clock,
) VoteService {
	return &voteService{
		userRepo:      userRepo,
		electionRepo:  electionRepo,
		candidateRepo: candidateRepo,
		voteRepo:      voteRepo,
		cache:         cache,
		clock:         clock,
	}
}

// getMutex returns the mutex serializing attempts of one user in one election.
func (s *voteService) getMutex(userID, electionID uuid.UUID) *sync.Mutex {
	key := userID.String() + ":" + electionID.String()
	value, _ := s.ballotMutexes.LoadOrStore(key, &sync.Mutex{})
	return value.(*sync.Mutex)
}

func reject(reason string, err error) error {
	metrics.VotesRejected.WithLabelValues(reason).Inc()
	return err
}

// CastVote checks eligibility, then records the ballot and increments the
// tally in a single transaction. The unique (user, election) index on
// ballots is the final guard against double voting.
func (s *voteService) CastVote(ctx context.Context, userID, candidateID, electionID uuid.UUID) (*VoteReceipt, error) {
	election, err := s.electionRepo.FindByID(ctx, electionID)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, reject("election_not_found", errors.ErrElectionNotFound)
		}
		return nil, fmt.Errorf("find election: %w", err)
	}

	now := s.clock.Now()
	if !election.OpenAt(now) {
		return nil, reject("election_not_active", errors.ErrElectionNotActive)
	}

	mutex := s.getMutex(userID, electionID)
	mutex.Lock()
	defer mutex.Unlock()

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, reject("user_not_found", errors.ErrUserNotFound)
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user.Role == model.RoleVoter && !user.IsVerified {
		return nil, reject("not_approved", errors.ErrNotApproved)
	}

	if user.HasVotedIn(electionID) {
		return nil, reject("already_voted", errors.ErrAlreadyVoted)
	}

	candidate, err := s.candidateRepo.FindByID(ctx, candidateID)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, reject("candidate_not_found", errors.ErrCandidateNotFound)
		}
		return nil, fmt.Errorf("find candidate: %w", err)
	}
	if candidate.ElectionID != electionID {
		return nil, reject("candidate_not_found", errors.ErrCandidateNotFound)
	}

	record := &model.VoteRecord{
		ID:         uuid.New(),
		UserID:     userID,
		ElectionID: electionID,
		VotedAt:    now,
	}

	err = s.voteRepo.WithTransaction(ctx, func(ctx context.Context, repo repository.VoteRepository) error {
		if err := repo.CreateRecord(ctx, record); err != nil {
			if stderrors.Is(err, gorm.ErrDuplicatedKey) {
				return errors.ErrAlreadyVoted
			}
			return fmt.Errorf("record ballot: %w", err)
		}
		if err := repo.IncrementTally(ctx, candidateID, electionID); err != nil {
			if stderrors.Is(err, gorm.ErrRecordNotFound) {
				return errors.ErrCandidateNotFound
			}
			return fmt.Errorf("increment tally: %w", err)
		}
		return nil
	})
	if err != nil {
		switch {
		case stderrors.Is(err, errors.ErrAlreadyVoted):
			return nil, reject("already_voted", err)
		case stderrors.Is(err, errors.ErrCandidateNotFound):
			return nil, reject("candidate_not_found", err)
		}
		logger.Log.Error("vote transaction failed", "user_id", userID, "election_id", electionID, "error", err)
		return nil, err
	}

	metrics.VotesCast.Inc()
	_ = s.cache.Delete(ctx, resultsCacheKey(electionID))

	candidate.Votes++
	if fresh, err := s.candidateRepo.FindByID(ctx, candidateID); err == nil {
		candidate = fresh
	}
	user.VotedElections = append(user.VotedElections, *record)

	logger.Log.Info("vote cast", "user_id", userID, "election_id", electionID)
	return &VoteReceipt{Candidate: candidate, User: user}, nil
}

// CheckVote reports whether the user has voted in the election.
func (s *voteService) CheckVote(ctx context.Context, userID, electionID uuid.UUID) (bool, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return false, errors.ErrUserNotFound
		}
		return false, fmt.Errorf("find user: %w", err)
	}
	return user.HasVotedIn(electionID), nil
}

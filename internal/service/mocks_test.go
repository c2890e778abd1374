package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"ballotbox/internal/model"
	"ballotbox/internal/repository"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) ListPendingVoters(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) FindVoterByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) SetVerified(ctx context.Context, id uuid.UUID, verified bool) error {
	args := m.Called(ctx, id, verified)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockElectionRepository is a mock implementation of ElectionRepository.
type MockElectionRepository struct {
	mock.Mock
}

func (m *MockElectionRepository) Create(ctx context.Context, election *model.Election) error {
	args := m.Called(ctx, election)
	return args.Error(0)
}

func (m *MockElectionRepository) Update(ctx context.Context, election *model.Election) error {
	args := m.Called(ctx, election)
	return args.Error(0)
}

func (m *MockElectionRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Election, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Election), args.Error(1)
}

func (m *MockElectionRepository) List(ctx context.Context) ([]model.Election, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Election), args.Error(1)
}

func (m *MockElectionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCandidateRepository is a mock implementation of CandidateRepository.
type MockCandidateRepository struct {
	mock.Mock
}

func (m *MockCandidateRepository) Create(ctx context.Context, candidate *model.Candidate) error {
	args := m.Called(ctx, candidate)
	return args.Error(0)
}

func (m *MockCandidateRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Candidate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Candidate), args.Error(1)
}

func (m *MockCandidateRepository) ListByElection(ctx context.Context, electionID uuid.UUID) ([]model.Candidate, error) {
	args := m.Called(ctx, electionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Candidate), args.Error(1)
}

func (m *MockCandidateRepository) ListByVotes(ctx context.Context, electionID uuid.UUID) ([]model.Candidate, error) {
	args := m.Called(ctx, electionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Candidate), args.Error(1)
}

// MockVoteRepository is a mock implementation of VoteRepository.
// WithTransaction runs fn against the mock itself.
type MockVoteRepository struct {
	mock.Mock
}

func (m *MockVoteRepository) CreateRecord(ctx context.Context, record *model.VoteRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockVoteRepository) IncrementTally(ctx context.Context, candidateID, electionID uuid.UUID) error {
	args := m.Called(ctx, candidateID, electionID)
	return args.Error(0)
}

func (m *MockVoteRepository) CountByElection(ctx context.Context, electionID uuid.UUID) (int64, error) {
	args := m.Called(ctx, electionID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockVoteRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo repository.VoteRepository) error) error {
	m.Called(ctx)
	return fn(ctx, m)
}

// MockTokenStore is a mock implementation of TokenStoreInterface.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}

package handler

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"ballotbox/internal/auth"
	"ballotbox/internal/model"
	"ballotbox/internal/service"
)

// MockAuthService is a mock implementation of service.AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, name, email, password string) (*model.User, error) {
	args := m.Called(ctx, name, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*model.User), args.Error(2)
}

func (m *MockAuthService) Authorize(ctx context.Context, token string) (*auth.Claims, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Claims), args.Error(1)
}

func (m *MockAuthService) Me(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	args := m.Called(ctx, claims)
	return args.Error(0)
}

// MockElectionService is a mock implementation of service.ElectionService.
type MockElectionService struct {
	mock.Mock
}

func (m *MockElectionService) CreateElection(ctx context.Context, in service.CreateElectionInput) (*model.Election, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Election), args.Error(1)
}

func (m *MockElectionService) ListElections(ctx context.Context) ([]model.Election, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Election), args.Error(1)
}

func (m *MockElectionService) GetElection(ctx context.Context, id uuid.UUID) (*model.Election, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Election), args.Error(1)
}

func (m *MockElectionService) UpdateElection(ctx context.Context, id uuid.UUID, patch service.ElectionPatch) (*model.Election, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Election), args.Error(1)
}

func (m *MockElectionService) DeleteElection(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCandidateService is a mock implementation of service.CandidateService.
type MockCandidateService struct {
	mock.Mock
}

func (m *MockCandidateService) AddCandidate(ctx context.Context, in service.AddCandidateInput) (*model.Candidate, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Candidate), args.Error(1)
}

func (m *MockCandidateService) ListCandidatesByElection(ctx context.Context, electionID uuid.UUID) ([]model.Candidate, error) {
	args := m.Called(ctx, electionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Candidate), args.Error(1)
}

func (m *MockCandidateService) GetCandidateDetail(ctx context.Context, id uuid.UUID) (*model.CandidateDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CandidateDetail), args.Error(1)
}

// MockVoteService is a mock implementation of service.VoteService.
type MockVoteService struct {
	mock.Mock
}

func (m *MockVoteService) CastVote(ctx context.Context, userID, candidateID, electionID uuid.UUID) (*service.VoteReceipt, error) {
	args := m.Called(ctx, userID, candidateID, electionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.VoteReceipt), args.Error(1)
}

func (m *MockVoteService) CheckVote(ctx context.Context, userID, electionID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, electionID)
	return args.Bool(0), args.Error(1)
}

// MockResultService is a mock implementation of service.ResultService.
type MockResultService struct {
	mock.Mock
}

func (m *MockResultService) GetResults(ctx context.Context, electionID uuid.UUID) (*service.ElectionResults, error) {
	args := m.Called(ctx, electionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ElectionResults), args.Error(1)
}

// MockAdminService is a mock implementation of service.AdminService.
type MockAdminService struct {
	mock.Mock
}

func (m *MockAdminService) ListPendingVoters(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockAdminService) ApproveVoter(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAdminService) RejectVoter(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAdminService) EnsureAdmin(ctx context.Context, name, email, password string) (*model.User, bool, error) {
	args := m.Called(ctx, name, email, password)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*model.User), args.Bool(1), args.Error(2)
}

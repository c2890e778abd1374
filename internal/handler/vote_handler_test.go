package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ballotbox/internal/auth"
	"ballotbox/internal/errors"
	"ballotbox/internal/model"
	"ballotbox/internal/service"
)

func TestVoteHandler_CastVote(t *testing.T) {
	voterID := uuid.New()
	otherID := uuid.New()
	electionID := uuid.New()
	candidateID := uuid.New()
	voterClaims := &auth.Claims{UserID: voterID, Role: model.RoleVoter}
	adminClaims := &auth.Claims{UserID: uuid.New(), Role: model.RoleAdmin}

	receipt := func(userID uuid.UUID) *service.VoteReceipt {
		return &service.VoteReceipt{
			Candidate: &model.Candidate{ID: candidateID, Name: "A", ElectionID: electionID, Votes: 1},
			User:      &model.User{ID: userID, Name: "V", Role: model.RoleVoter},
		}
	}

	tests := []struct {
		name       string
		claims     *auth.Claims
		userID     string
		setupMock  func(m *MockVoteService)
		wantStatus int
		wantCode   string
	}{
		{
			name:   "caller votes for themself",
			claims: voterClaims,
			setupMock: func(m *MockVoteService) {
				m.On("CastVote", mock.Anything, voterID, candidateID, electionID).Return(receipt(voterID), nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "explicit matching user id",
			claims: voterClaims,
			userID: voterID.String(),
			setupMock: func(m *MockVoteService) {
				m.On("CastVote", mock.Anything, voterID, candidateID, electionID).Return(receipt(voterID), nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "voter cannot vote for someone else",
			claims:     voterClaims,
			userID:     otherID.String(),
			wantStatus: http.StatusForbidden,
			wantCode:   "FORBIDDEN",
		},
		{
			name:   "admin may act for a voter",
			claims: adminClaims,
			userID: otherID.String(),
			setupMock: func(m *MockVoteService) {
				m.On("CastVote", mock.Anything, otherID, candidateID, electionID).Return(receipt(otherID), nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "admin acting for a pending voter",
			claims: adminClaims,
			userID: otherID.String(),
			setupMock: func(m *MockVoteService) {
				m.On("CastVote", mock.Anything, otherID, candidateID, electionID).Return(nil, errors.ErrNotApproved)
			},
			wantStatus: http.StatusForbidden,
			wantCode:   "NOT_APPROVED",
		},
		{
			name:   "already voted",
			claims: voterClaims,
			setupMock: func(m *MockVoteService) {
				m.On("CastVote", mock.Anything, voterID, candidateID, electionID).Return(nil, errors.ErrAlreadyVoted)
			},
			wantStatus: http.StatusBadRequest,
			wantCode:   "ALREADY_VOTED",
		},
		{
			name:   "outside the window",
			claims: voterClaims,
			setupMock: func(m *MockVoteService) {
				m.On("CastVote", mock.Anything, voterID, candidateID, electionID).Return(nil, errors.ErrElectionNotActive)
			},
			wantStatus: http.StatusBadRequest,
			wantCode:   "ELECTION_NOT_ACTIVE",
		},
		{
			name:   "storage fault",
			claims: voterClaims,
			setupMock: func(m *MockVoteService) {
				m.On("CastVote", mock.Anything, voterID, candidateID, electionID).Return(nil, fmt.Errorf("record ballot: %w", assert.AnError))
			},
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockVoteService)
			if tt.setupMock != nil {
				tt.setupMock(svc)
			}
			body := fmt.Sprintf(`{"userId":%q,"candidateId":%q,"electionId":%q}`, tt.userID, candidateID, electionID)
			c, rec := newContext(request{method: http.MethodPost, path: "/api/vote/castVote", body: body, claims: tt.claims})

			err := NewVoteHandler(svc).CastVote(c)

			assert.Equal(t, tt.wantStatus, status(rec, err))
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, errorCode(t, err))
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestVoteHandler_CastVote_ResponseShape(t *testing.T) {
	voterID, electionID, candidateID := uuid.New(), uuid.New(), uuid.New()
	svc := new(MockVoteService)
	svc.On("CastVote", mock.Anything, voterID, candidateID, electionID).Return(&service.VoteReceipt{
		Candidate: &model.Candidate{ID: candidateID, Name: "A", Votes: 3},
		User:      &model.User{ID: voterID, Name: "V", Email: "v@example.com", Role: model.RoleVoter},
	}, nil)

	body := fmt.Sprintf(`{"candidateId":%q,"electionId":%q}`, candidateID, electionID)
	c, rec := newContext(request{method: http.MethodPost, path: "/api/vote/castVote", body: body, claims: &auth.Claims{UserID: voterID, Role: model.RoleVoter}})
	require.NoError(t, NewVoteHandler(svc).CastVote(c))

	var resp struct {
		Candidate model.Candidate   `json:"candidate"`
		User      map[string]string `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(3), resp.Candidate.Votes)
	assert.Equal(t, voterID.String(), resp.User["id"])
	assert.NotContains(t, resp.User, "email")
}

func TestVoteHandler_CastVote_InvalidBody(t *testing.T) {
	claims := &auth.Claims{UserID: uuid.New(), Role: model.RoleVoter}
	for _, body := range []string{
		`{"candidateId":"x","electionId":"y"}`,
		`{"electionId":"` + uuid.NewString() + `"}`,
		`not json`,
	} {
		c, rec := newContext(request{method: http.MethodPost, path: "/api/vote/castVote", body: body, claims: claims})
		err := NewVoteHandler(new(MockVoteService)).CastVote(c)
		assert.Equal(t, http.StatusBadRequest, status(rec, err), body)
	}
}

func TestVoteHandler_CheckVote(t *testing.T) {
	voterID, electionID := uuid.New(), uuid.New()
	svc := new(MockVoteService)
	svc.On("CheckVote", mock.Anything, voterID, electionID).Return(true, nil)

	c, rec := newContext(request{
		method: http.MethodPost,
		path:   "/api/vote/check",
		body:   fmt.Sprintf(`{"electionId":%q}`, electionID),
		claims: &auth.Claims{UserID: voterID, Role: model.RoleVoter},
	})

	require.NoError(t, NewVoteHandler(svc).CheckVote(c))
	assert.JSONEq(t, `{"hasVoted":true}`, rec.Body.String())

	c, rec = newContext(request{
		method: http.MethodPost,
		path:   "/api/vote/check",
		body:   fmt.Sprintf(`{"userId":%q,"electionId":%q}`, uuid.New(), electionID),
		claims: &auth.Claims{UserID: voterID, Role: model.RoleVoter},
	})
	err := NewVoteHandler(svc).CheckVote(c)
	assert.Equal(t, http.StatusForbidden, status(rec, err))
}

package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"ballotbox/internal/errors"
	"ballotbox/internal/model"
	"ballotbox/internal/service"
)

// VoteHandler handles ballot endpoints.
type VoteHandler struct {
	voteService service.VoteService
}

// NewVoteHandler creates a new vote handler.
func NewVoteHandler(voteService service.VoteService) *VoteHandler {
	return &VoteHandler{voteService: voteService}
}

// CastVoteRequest represents a ballot. UserID defaults to the caller.
type CastVoteRequest struct {
	UserID      string `json:"userId" validate:"omitempty,uuid"`
	CandidateID string `json:"candidateId" validate:"required,uuid"`
	ElectionID  string `json:"electionId" validate:"required,uuid"`
}

// CheckVoteRequest asks whether a user has voted in an election. UserID defaults to the caller.
type CheckVoteRequest struct {
	UserID     string `json:"userId" validate:"omitempty,uuid"`
	ElectionID string `json:"electionId" validate:"required,uuid"`
}

// CastVoteResponse confirms a ballot.
type CastVoteResponse struct {
	Message   string            `json:"message"`
	Candidate *model.Candidate  `json:"candidate"`
	User      model.UserSummary `json:"user"`
}

// CheckVoteResponse reports whether the user has voted.
type CheckVoteResponse struct {
	HasVoted bool `json:"hasVoted"`
}

// voter resolves whose ballot a request is about. Only admins may act for someone else.
func voter(c echo.Context, requested string) (uuid.UUID, error) {
	claims, err := callerClaims(c)
	if err != nil {
		return uuid.Nil, err
	}
	if requested == "" {
		return claims.UserID, nil
	}

	id, err := parseUUID(requested, "userId")
	if err != nil {
		return uuid.Nil, respondError(c, err)
	}
	if id != claims.UserID && !claims.IsAdmin() {
		return uuid.Nil, respondError(c, errors.ErrForbidden)
	}
	return id, nil
}

// CastVote godoc
// @Summary Cast a vote
// @Description Records one ballot per voter and election and increments the candidate tally.
// @Tags votes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CastVoteRequest true "Ballot"
// @Success 200 {object} CastVoteResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /vote/castVote [post]
func (h *VoteHandler) CastVote(c echo.Context) error {
	var req CastVoteRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	userID, err := voter(c, req.UserID)
	if err != nil {
		return err
	}
	candidateID, err := parseUUID(req.CandidateID, "candidateId")
	if err != nil {
		return respondError(c, err)
	}
	electionID, err := parseUUID(req.ElectionID, "electionId")
	if err != nil {
		return respondError(c, err)
	}

	receipt, err := h.voteService.CastVote(c.Request().Context(), userID, candidateID, electionID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, CastVoteResponse{
		Message:   "vote cast successfully",
		Candidate: receipt.Candidate,
		User:      receipt.User.Summary(),
	})
}

// CheckVote godoc
// @Summary Check whether a voter has voted
// @Tags votes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CheckVoteRequest true "Voter and election"
// @Success 200 {object} CheckVoteResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /vote/check [post]
func (h *VoteHandler) CheckVote(c echo.Context) error {
	var req CheckVoteRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	userID, err := voter(c, req.UserID)
	if err != nil {
		return err
	}
	electionID, err := parseUUID(req.ElectionID, "electionId")
	if err != nil {
		return respondError(c, err)
	}

	voted, err := h.voteService.CheckVote(c.Request().Context(), userID, electionID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, CheckVoteResponse{HasVoted: voted})
}

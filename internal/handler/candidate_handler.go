package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"ballotbox/internal/service"
)

// CandidateHandler handles candidate endpoints.
type CandidateHandler struct {
	candidateService service.CandidateService
}

// NewCandidateHandler creates a new candidate handler.
func NewCandidateHandler(candidateService service.CandidateService) *CandidateHandler {
	return &CandidateHandler{candidateService: candidateService}
}

// CreateCandidateRequest represents a candidate creation request.
type CreateCandidateRequest struct {
	Name       string `json:"name" validate:"required"`
	Party      string `json:"party"`
	Bio        string `json:"bio"`
	Photo      string `json:"photo"`
	ElectionID string `json:"electionId" validate:"required,uuid"`
}

// Create godoc
// @Summary Add a candidate to an election
// @Tags candidates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateCandidateRequest true "Candidate data"
// @Success 201 {object} model.Candidate
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /candidates/create [post]
func (h *CandidateHandler) Create(c echo.Context) error {
	var req CreateCandidateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	electionID, err := parseUUID(req.ElectionID, "electionId")
	if err != nil {
		return respondError(c, err)
	}

	candidate, err := h.candidateService.AddCandidate(c.Request().Context(), service.AddCandidateInput{
		Name:       req.Name,
		Party:      req.Party,
		Bio:        req.Bio,
		Photo:      req.Photo,
		ElectionID: electionID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, candidate)
}

// ListByElection godoc
// @Summary List the candidates of an election
// @Tags candidates
// @Produce json
// @Param electionId path string true "Election ID"
// @Success 200 {array} model.Candidate
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /elections/{electionId}/candidates [get]
func (h *CandidateHandler) ListByElection(c echo.Context) error {
	electionID, err := paramUUID(c, "electionId")
	if err != nil {
		return err
	}

	candidates, err := h.candidateService.ListCandidatesByElection(c.Request().Context(), electionID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, candidates)
}

// Get godoc
// @Summary Candidate detail
// @Description Public fields only; the tally is not included.
// @Tags candidates
// @Produce json
// @Security BearerAuth
// @Param id path string true "Candidate ID"
// @Success 200 {object} model.CandidateDetail
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /candidates/{id} [get]
func (h *CandidateHandler) Get(c echo.Context) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	detail, err := h.candidateService.GetCandidateDetail(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, detail)
}

package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"ballotbox/internal/service"
)

// ElectionHandler handles election registry endpoints.
type ElectionHandler struct {
	electionService service.ElectionService
	clock           *service.Clock
}

// NewElectionHandler creates a new election handler.
func NewElectionHandler(electionService service.ElectionService, clock *service.Clock) *ElectionHandler {
	return &ElectionHandler{electionService: electionService, clock: clock}
}

// CreateElectionRequest represents an election creation request.
// Dates accept RFC 3339, YYYY-MM-DDTHH:MM or YYYY-MM-DD.
type CreateElectionRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	StartDate   string `json:"startDate" validate:"required"`
	EndDate     string `json:"endDate" validate:"required"`
}

// UpdateElectionRequest is a partial election update; omitted fields are kept.
type UpdateElectionRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1"`
	Description *string `json:"description"`
	StartDate   *string `json:"startDate"`
	EndDate     *string `json:"endDate"`
	IsActive    *bool   `json:"isActive"`
}

func (h *ElectionHandler) parseOptional(value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	t, err := h.clock.Parse(*value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Create godoc
// @Summary Create an election
// @Tags elections
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateElectionRequest true "Election data"
// @Success 201 {object} model.Election
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /elections/create [post]
func (h *ElectionHandler) Create(c echo.Context) error {
	claims, err := callerClaims(c)
	if err != nil {
		return err
	}

	var req CreateElectionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	start, err := h.clock.Parse(req.StartDate)
	if err != nil {
		return respondError(c, err)
	}
	end, err := h.clock.Parse(req.EndDate)
	if err != nil {
		return respondError(c, err)
	}

	election, err := h.electionService.CreateElection(c.Request().Context(), service.CreateElectionInput{
		Title:       req.Title,
		Description: req.Description,
		StartDate:   start,
		EndDate:     end,
		CreatedBy:   claims.UserID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, election)
}

// List godoc
// @Summary List elections
// @Description Most recent start date first.
// @Tags elections
// @Produce json
// @Success 200 {array} model.Election
// @Failure 500 {object} errors.ErrorResponse
// @Router /elections [get]
func (h *ElectionHandler) List(c echo.Context) error {
	elections, err := h.electionService.ListElections(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, elections)
}

// Get godoc
// @Summary Get an election
// @Tags elections
// @Produce json
// @Param id path string true "Election ID"
// @Success 200 {object} model.Election
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /elections/{id} [get]
func (h *ElectionHandler) Get(c echo.Context) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	election, err := h.electionService.GetElection(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, election)
}

// Update godoc
// @Summary Update an election
// @Tags elections
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Election ID"
// @Param request body UpdateElectionRequest true "Fields to change"
// @Success 200 {object} model.Election
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /elections/update/{id} [put]
func (h *ElectionHandler) Update(c echo.Context) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	var req UpdateElectionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	start, err := h.parseOptional(req.StartDate)
	if err != nil {
		return respondError(c, err)
	}
	end, err := h.parseOptional(req.EndDate)
	if err != nil {
		return respondError(c, err)
	}

	election, err := h.electionService.UpdateElection(c.Request().Context(), id, service.ElectionPatch{
		Title:       req.Title,
		Description: req.Description,
		StartDate:   start,
		EndDate:     end,
		IsActive:    req.IsActive,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, election)
}

// Delete godoc
// @Summary Delete an election
// @Description Also removes its candidates and ballots.
// @Tags elections
// @Produce json
// @Security BearerAuth
// @Param id path string true "Election ID"
// @Success 200 {object} MessageResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /elections/delete/{id} [delete]
func (h *ElectionHandler) Delete(c echo.Context) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.electionService.DeleteElection(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "election deleted"})
}

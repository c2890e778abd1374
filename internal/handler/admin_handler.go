package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"ballotbox/internal/model"
	"ballotbox/internal/service"
)

// AdminHandler handles voter approval endpoints.
type AdminHandler struct {
	adminService service.AdminService
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(adminService service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// PendingVotersResponse lists voters awaiting approval.
type PendingVotersResponse struct {
	Voters []model.User `json:"voters"`
}

// VoterResponse confirms an approval.
type VoterResponse struct {
	Message string      `json:"message"`
	Voter   *model.User `json:"voter"`
}

// PendingVoters godoc
// @Summary List voters awaiting approval
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} PendingVotersResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/pending-voters [get]
func (h *AdminHandler) PendingVoters(c echo.Context) error {
	voters, err := h.adminService.ListPendingVoters(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	if voters == nil {
		voters = []model.User{}
	}
	return c.JSON(http.StatusOK, PendingVotersResponse{Voters: voters})
}

// Approve godoc
// @Summary Approve a voter
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Voter ID"
// @Success 200 {object} VoterResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/voters/{id}/approve [put]
func (h *AdminHandler) Approve(c echo.Context) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	voter, err := h.adminService.ApproveVoter(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, VoterResponse{Message: "voter approved", Voter: voter})
}

// Reject godoc
// @Summary Reject a voter
// @Description Deletes a voter account that is still awaiting approval.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Voter ID"
// @Success 200 {object} MessageResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /admin/voters/{id}/reject [put]
func (h *AdminHandler) Reject(c echo.Context) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.adminService.RejectVoter(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "voter rejected and removed"})
}

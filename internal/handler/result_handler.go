package handler

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"ballotbox/internal/service"
)

// ResultHandler handles election report endpoints.
type ResultHandler struct {
	resultService service.ResultService
}

// NewResultHandler creates a new result handler.
func NewResultHandler(resultService service.ResultService) *ResultHandler {
	return &ResultHandler{resultService: resultService}
}

// Get godoc
// @Summary Election results
// @Description Candidates sorted by descending tally, ties in creation order.
// @Tags results
// @Produce json
// @Param electionId path string true "Election ID"
// @Success 200 {object} service.ElectionResults
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /results/{electionId} [get]
func (h *ResultHandler) Get(c echo.Context) error {
	electionID, err := paramUUID(c, "electionId")
	if err != nil {
		return err
	}

	results, err := h.resultService.GetResults(c.Request().Context(), electionID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, results)
}

// Export godoc
// @Summary Export election results as CSV
// @Tags results
// @Produce text/csv
// @Param electionId path string true "Election ID"
// @Success 200 {string} string "CSV report"
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /results/{electionId}/export [get]
func (h *ResultHandler) Export(c echo.Context) error {
	electionID, err := paramUUID(c, "electionId")
	if err != nil {
		return err
	}

	results, err := h.resultService.GetResults(c.Request().Context(), electionID)
	if err != nil {
		return respondError(c, err)
	}

	body, err := resultsCSV(results)
	if err != nil {
		return respondError(c, err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="results-%s.csv"`, electionID))
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", body)
}

func resultsCSV(results *service.ElectionResults) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	records := [][]string{
		{"election", results.Election},
		{"total_votes", strconv.FormatInt(results.TotalVotes, 10)},
		{},
		{"rank", "candidate", "party", "votes", "share"},
	}
	for i, row := range results.Candidates {
		records = append(records, []string{
			strconv.Itoa(i + 1),
			row.Name,
			row.Party,
			strconv.FormatInt(row.Votes, 10),
			row.Share,
		})
	}

	if err := w.WriteAll(records); err != nil {
		return nil, fmt.Errorf("write csv: %w", err)
	}
	return buf.Bytes(), nil
}

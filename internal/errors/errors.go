package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrVoterNotFound is returned when an approval target is not a known voter.
	ErrVoterNotFound = errors.New("voter not found")
	// ErrVoterApproved is returned when rejecting a voter that was already approved.
	ErrVoterApproved = errors.New("voter already approved")
	// ErrElectionNotFound is returned when an election is not found.
	ErrElectionNotFound = errors.New("election not found")
	// ErrCandidateNotFound is returned when a candidate is not found.
	ErrCandidateNotFound = errors.New("candidate not found")

	// ErrDuplicateEmail is returned when registering an email that is already in use.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrAlreadyVoted is returned when a user votes twice in the same election.
	ErrAlreadyVoted = errors.New("you have already voted in this election")

	// ErrInvalidCredentials is returned when the password does not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNotApproved is returned when an unverified voter tries to log in.
	ErrNotApproved = errors.New("voter account not approved yet")
	// ErrUnauthenticated is returned when a token is missing, invalid, expired or revoked.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrForbidden is returned when the caller lacks the required role.
	ErrForbidden = errors.New("insufficient permissions")

	// ErrInvalidDateRange is returned when an election does not start before it ends.
	ErrInvalidDateRange = errors.New("start date must be before end date")
	// ErrElectionNotActive is returned when voting outside the election window.
	ErrElectionNotActive = errors.New("election is not active")
	// ErrInvalidInput is returned for malformed or missing request fields.
	ErrInvalidInput = errors.New("invalid input")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

var mappings = []struct {
	err    error
	status int
	code   string
}{
	{ErrUserNotFound, http.StatusNotFound, "USER_NOT_FOUND"},
	{ErrVoterNotFound, http.StatusNotFound, "VOTER_NOT_FOUND"},
	{ErrVoterApproved, http.StatusConflict, "VOTER_APPROVED"},
	{ErrElectionNotFound, http.StatusNotFound, "ELECTION_NOT_FOUND"},
	{ErrCandidateNotFound, http.StatusNotFound, "CANDIDATE_NOT_FOUND"},
	{ErrDuplicateEmail, http.StatusBadRequest, "DUPLICATE_EMAIL"},
	{ErrAlreadyVoted, http.StatusBadRequest, "ALREADY_VOTED"},
	{ErrInvalidCredentials, http.StatusBadRequest, "INVALID_CREDENTIALS"},
	{ErrNotApproved, http.StatusForbidden, "NOT_APPROVED"},
	{ErrUnauthenticated, http.StatusUnauthorized, "UNAUTHENTICATED"},
	{ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
	{ErrInvalidDateRange, http.StatusBadRequest, "INVALID_DATE_RANGE"},
	{ErrElectionNotActive, http.StatusBadRequest, "ELECTION_NOT_ACTIVE"},
	{ErrInvalidInput, http.StatusBadRequest, "INVALID_INPUT"},
}

// MapErrorToHTTP maps domain errors to HTTP errors. Wrapped domain errors
// keep their full message; anything unrecognised becomes a 500.
func MapErrorToHTTP(err error) *HTTPError {
	for _, m := range mappings {
		if errors.Is(err, m.err) {
			return NewHTTPError(m.status, err.Error(), m.code)
		}
	}
	return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
}

package utils

import (
	"errors"
	"net/http"
)

var (
	ErrTourNotFound    = errors.New("tour not found")
	ErrAccountNotFound = errors.New("account not found")

	ErrNotOwner           = errors.New("caller is not the tour owner")
	ErrNotAdministrator   = errors.New("caller is not an administrator")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrInvalidParameters    = errors.New("invalid parameters")
	ErrTourInactive         = errors.New("tour is inactive")
	ErrTourNotVerified      = errors.New("tour is not verified")
	ErrTourAlreadyVerified  = errors.New("tour is already verified")
	ErrSelfVoteForbidden    = errors.New("owners cannot vote on their own tour")
	ErrSelfCheckInForbidden = errors.New("owners cannot check in to their own tour")
	ErrAlreadyVoted         = errors.New("already voted on this tour")
	ErrAlreadyCheckedIn     = errors.New("already checked in to this tour")
	ErrLocationMismatch     = errors.New("claimed location does not match the tour")
	ErrInsufficientStake    = errors.New("insufficient stake to vote")
	ErrEmailAlreadyExists   = errors.New("email already registered")
	ErrInvalidResetToken    = errors.New("reset token is invalid or expired")

	ErrBalanceOverflow = errors.New("balance overflow")

	ErrOperationsPaused = errors.New("operations are paused")

	ErrInvalidPage     = errors.New("invalid page parameter")
	ErrInvalidPageSize = errors.New("invalid page size parameter")
	ErrDatabaseError   = errors.New("database error")
)

type ErrorClass string

const (
	ClassNotFound          ErrorClass = "not_found"
	ClassAuthorization     ErrorClass = "authorization"
	ClassPolicy            ErrorClass = "policy"
	ClassResourceExhausted ErrorClass = "resource_exhausted"
	ClassPaused            ErrorClass = "paused"
	ClassInternal          ErrorClass = "internal"
)

type errorEntry struct {
	err     error
	code    string
	class   ErrorClass
	status  int
	message string
}

var errorTable = []errorEntry{
	{ErrTourNotFound, "TOUR_NOT_FOUND", ClassNotFound, http.StatusNotFound, "Tour not found"},
	{ErrAccountNotFound, "ACCOUNT_NOT_FOUND", ClassNotFound, http.StatusNotFound, "Account not found"},
	{ErrNotOwner, "NOT_OWNER", ClassAuthorization, http.StatusForbidden, "Only the tour owner can do this"},
	{ErrNotAdministrator, "NOT_ADMINISTRATOR", ClassAuthorization, http.StatusForbidden, "Administrator privileges required"},
	{ErrInvalidCredentials, "INVALID_CREDENTIALS", ClassAuthorization, http.StatusUnauthorized, "Invalid email or password"},
	{ErrInvalidParameters, "INVALID_PARAMETERS", ClassPolicy, http.StatusBadRequest, "Invalid parameters"},
	{ErrTourInactive, "TOUR_INACTIVE", ClassPolicy, http.StatusConflict, "Tour is inactive"},
	{ErrTourNotVerified, "TOUR_NOT_VERIFIED", ClassPolicy, http.StatusConflict, "Tour is not verified yet"},
	{ErrTourAlreadyVerified, "TOUR_ALREADY_VERIFIED", ClassPolicy, http.StatusConflict, "Verified tours cannot be changed"},
	{ErrSelfVoteForbidden, "SELF_VOTE_FORBIDDEN", ClassPolicy, http.StatusConflict, "You cannot vote on your own tour"},
	{ErrSelfCheckInForbidden, "SELF_CHECKIN_FORBIDDEN", ClassPolicy, http.StatusConflict, "You cannot check in to your own tour"},
	{ErrAlreadyVoted, "ALREADY_VOTED", ClassPolicy, http.StatusConflict, "You already voted on this tour"},
	{ErrAlreadyCheckedIn, "ALREADY_CHECKED_IN", ClassPolicy, http.StatusConflict, "You already checked in to this tour"},
	{ErrLocationMismatch, "LOCATION_MISMATCH", ClassPolicy, http.StatusUnprocessableEntity, "Location does not match the tour"},
	{ErrInsufficientStake, "INSUFFICIENT_STAKE", ClassPolicy, http.StatusUnprocessableEntity, "Insufficient stake to vote"},
	{ErrEmailAlreadyExists, "EMAIL_ALREADY_EXISTS", ClassPolicy, http.StatusConflict, "Email already registered"},
	{ErrInvalidResetToken, "INVALID_RESET_TOKEN", ClassPolicy, http.StatusBadRequest, "Reset token is invalid or expired"},
	{ErrInvalidPage, "INVALID_PAGE", ClassPolicy, http.StatusBadRequest, "Page must be greater than 0"},
	{ErrInvalidPageSize, "INVALID_PAGE_SIZE", ClassPolicy, http.StatusBadRequest, "Page size must be between 1 and 100"},
	{ErrBalanceOverflow, "BALANCE_OVERFLOW", ClassResourceExhausted, http.StatusInsufficientStorage, "Balance limit reached"},
	{ErrOperationsPaused, "OPERATIONS_PAUSED", ClassPaused, http.StatusServiceUnavailable, "Operations are paused"},
	{ErrDatabaseError, "DATABASE_ERROR", ClassInternal, http.StatusInternalServerError, "Internal server error"},
}

func lookupError(err error) (errorEntry, bool) {
	for _, entry := range errorTable {
		if errors.Is(err, entry.err) {
			return entry, true
		}
	}
	return errorEntry{}, false
}

// ErrorCode returns the stable machine-readable code for a service error, or
// "INTERNAL" for anything unknown.
func ErrorCode(err error) string {
	if entry, ok := lookupError(err); ok {
		return entry.code
	}
	return "INTERNAL"
}

func ClassOf(err error) ErrorClass {
	if entry, ok := lookupError(err); ok {
		return entry.class
	}
	return ClassInternal
}

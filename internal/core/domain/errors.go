package domain

import "errors"

// Session state.
var (
	ErrPartialPrincipal           = errors.New("principal is partially set")
	ErrMalformedState             = errors.New("malformed persisted session state")
	ErrAccommodationNotApplicable = errors.New("accommodation context requires an owner or manager session")
	ErrNoAccommodation            = errors.New("session has no accommodation")
	ErrUnknownRole                = errors.New("unknown role")
	ErrInvalidToken               = errors.New("invalid or expired token")
)

// Screens and the backend API.
var (
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidInput        = errors.New("invalid input")
	ErrNotFound            = errors.New("resource not found")
	ErrBackendUnavailable  = errors.New("backend request failed")
	ErrSuperseded          = errors.New("screen superseded by a newer navigation")
	ErrDuplicateSubmission = errors.New("request already in progress")
	ErrMatchWindowClosed   = errors.New("love-matching window is closed")
	ErrUsernameTaken       = errors.New("username already taken")
)

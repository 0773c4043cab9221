package services

import "errors"

// Precondition faults. Controllers map these to 400/404 responses with
// errors.Is; every other error stays behind a generic internal fault so raw
// store errors never reach the caller.
var (
	// ErrInvalidCoordinates is returned for non-finite or out-of-range
	// latitude/longitude input.
	ErrInvalidCoordinates = errors.New("latitude and longitude must be valid finite coordinates")

	// ErrNoLocation is returned when an operation needs the requester's
	// stored coordinates and the user has never shared a location.
	ErrNoLocation = errors.New("user has no stored location")

	// ErrProfileNotFound is returned when the requester has no profile record.
	ErrProfileNotFound = errors.New("user profile not found")

	// ErrUserNotFound is returned when the requester's identity record is missing.
	ErrUserNotFound = errors.New("user not found")

	// ErrSelfView rejects recording a view of the viewer's own profile.
	ErrSelfView = errors.New("cannot record a view of your own profile")
)

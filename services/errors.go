package services

import "errors"

// The attendance error taxonomy. All of these are expected, recoverable,
// user-facing conditions: the handler surfaces the message and the caller
// may resubmit. The service never retries on its own.
var (
	// ErrDuplicateLog: an arrival log found any existing record for the
	// employee-day, regardless of its completion state.
	ErrDuplicateLog = errors.New("arrival already logged for today")

	// ErrNoArrival: a leaving log found no record for the employee-day.
	ErrNoArrival = errors.New("arrival not logged for today")

	// ErrAlreadyCompleted: the session already has a leaving time.
	ErrAlreadyCompleted = errors.New("leaving time already logged for today")

	// ErrConflict: the storage-layer uniqueness backstop fired, meaning a
	// concurrent request created the record between our lookup and insert.
	ErrConflict = errors.New("attendance record was created by a concurrent request")

	// ErrGeoRejected: restriction is on and the coordinate is outside the
	// allowed radius.
	ErrGeoRejected = errors.New("out of allowed location")

	// ErrAwaitingLocation: restriction is on but no coordinate is available
	// yet; neither admitted nor rejected.
	ErrAwaitingLocation = errors.New("waiting for device location")

	// ErrRecordNotFound: an admin edit referenced a record that does not
	// exist.
	ErrRecordNotFound = errors.New("attendance record not found")
)

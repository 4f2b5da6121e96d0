// services/errors.go
package services

import "errors"

// Error kinds returned by the booking core. Controllers map them to HTTP
// statuses; none carry transport-specific codes.
var (
	// ErrValidation marks malformed input (missing required field,
	// non-positive duration, malformed time). Wrap with detail.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks a missing studio/employee/service/booking id.
	ErrNotFound = errors.New("not found")

	// ErrServiceNotOffered: no active employee-service assignment exists for
	// the requested (employee, service) pair.
	ErrServiceNotOffered = errors.New("service not offered by this employee")

	// ErrSlotNoLongerAvailable: a commit-time overlap was detected. Expected
	// under concurrent load; callers should re-fetch slots and retry rather
	// than treat it as a hard failure.
	ErrSlotNoLongerAvailable = errors.New("slot no longer available")

	// ErrInvalidTransition: the requested status change is not reachable
	// from the booking's current status.
	ErrInvalidTransition = errors.New("invalid status transition")
)

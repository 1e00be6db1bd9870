// services/errors.go
package services

import "errors"

// Failure kinds the booking core can report. Controllers match on these to
// pick a status code and message; anything else is a storage failure and is
// passed through untouched.
var (
	// ErrSlotUnavailable means the requested start time is missing from the
	// freshly computed grid or was taken by a concurrent booking.
	ErrSlotUnavailable = errors.New("this time is no longer available")

	// ErrInvalidTransition means the requested status change violates the
	// appointment lifecycle (confirmed -> completed | cancelled, both terminal).
	ErrInvalidTransition = errors.New("invalid appointment status transition")

	// ErrServiceHasPendingAppointments blocks removal of a service that still
	// has confirmed future bookings.
	ErrServiceHasPendingAppointments = errors.New("service has pending appointments")
)

// Package repository defines error types reused across repositories.
// Handlers use these to distinguish business outcomes from infrastructure
// faults when choosing an HTTP status. The booking errors carry their
// identifiers so callers can build responses without re-querying.
package repository

import (
	"errors"
	"fmt"
)

// ErrEventNotFound is returned when an event id does not resolve to a row.
// Handlers translate this into an HTTP 404 response.
var ErrEventNotFound = errors.New("event not found")

// ErrUserNotFound is returned when a user id does not resolve to a row.
var ErrUserNotFound = errors.New("user not found")

// ErrBookingNotFound is returned when a booking read-back finds no row.
// Inside the booking transaction this indicates a visibility bug, not a
// business condition; the coordinator surfaces it as an internal failure.
var ErrBookingNotFound = errors.New("booking not found")

// TicketNotFoundError is returned when a ticket id does not resolve to an
// inventory row. It carries the id for the 404 response body.
type TicketNotFoundError struct {
	TicketID uint64
}

func (e *TicketNotFoundError) Error() string {
	return fmt.Sprintf("ticket with id %d not found", e.TicketID)
}

// InsufficientTicketsError is the expected business conflict: the
// conditional decrement matched no row because remaining < requested.
// Remaining is read after the failed decrement and can be stale under
// concurrent load; it is informational only, never authoritative.
type InsufficientTicketsError struct {
	TicketID  uint64
	Requested uint32
	Remaining uint32
}

func (e *InsufficientTicketsError) Error() string {
	return fmt.Sprintf("not enough tickets available for ticket %d: remaining %d, requested %d",
		e.TicketID, e.Remaining, e.Requested)
}

// Package queue defines message payloads exchanged over the message broker
// and the background consumer that processes them.
package queue

// BookingConfirmedEvent is published when a purchase has committed. It
// carries the booking snapshot so downstream consumers can log, notify or
// feed analytics without querying the primary database.
type BookingConfirmedEvent struct {
	BookingID    uint64  `json:"booking_id"`
	TicketID     uint64  `json:"ticket_id"`
	UserID       uint64  `json:"user_id"`
	UnitPrice    float64 `json:"unit_price"`
	TicketAmount uint32  `json:"ticket_amount"`
	TotalPrice   float64 `json:"total_price"`
	PurchasedAt  string  `json:"purchased_at"`
}

package model

// BookingRequest is the validated input for a ticket purchase.  All three
// fields must be positive; the handler rejects anything else before the
// booking service is invoked.
//
// Fields:
//  TicketID – inventory row the purchase draws from.
//  UserID   – user making the purchase.
//  Quantity – number of tickets requested (>= 1).
type BookingRequest struct {
	TicketID uint64 `json:"ticketId"`
	UserID   uint64 `json:"userId"`
	Quantity uint32 `json:"quantity"`
}

// Booking is an immutable record of a completed purchase.  UnitPrice is the
// ticket price captured at the moment the inventory decrement committed; it
// is never re-derived from the ticket's current price.  TotalPrice is
// computed by the database as unit_price * ticket_amount so it always agrees
// exactly with the stored snapshot.
//
// Fields:
//  ID            – user_ticket.id, assigned on insert.
//  TicketID      – user_ticket.ticket_id.
//  UserID        – user_ticket.user_id.
//  UnitPrice     – user_ticket.unit_price (price snapshot).
//  TicketAmount  – user_ticket.ticket_amount.
//  TotalPrice    – unit_price * ticket_amount, computed in SQL.
//  DatePurchased – user_ticket.date_purchased in ISO 8601 UTC.
type Booking struct {
	ID            uint64  `json:"id"`
	TicketID      uint64  `json:"ticketId"`
	UserID        uint64  `json:"userId"`
	UnitPrice     float64 `json:"unitPrice"`
	TicketAmount  uint32  `json:"ticketAmount"`
	TotalPrice    float64 `json:"totalPrice"`
	DatePurchased string  `json:"datePurchased"`
}

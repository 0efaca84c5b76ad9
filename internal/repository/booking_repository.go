package repository

import (
	"context"
	"database/sql"

	"github.com/ticketline/ticket-shop/internal/model"
)

// BookingRepo is the append-only store of confirmed purchases in the
// user_ticket table. Rows are created inside the booking transaction and
// never updated or deleted.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// Create inserts a booking row and returns the generated id. The unit price
// is captured from the ticket row by the INSERT..SELECT itself, inside the
// same transaction as the decrement, so the snapshot is exactly the price
// the decrement saw even if the live price changes later. The caller is
// expected to run this inside a WithTx scope after a successful decrement.
func (r *BookingRepo) Create(ctx context.Context, req model.BookingRequest) (uint64, error) {
	const q = `INSERT INTO user_ticket (user_id, ticket_id, unit_price, ticket_amount)
               SELECT ?, ?, price, ? FROM ticket WHERE id = ?`
	res, err := conn(ctx, r.db).ExecContext(ctx, q, req.UserID, req.TicketID, req.Quantity, req.TicketID)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByID re-reads a booking row. The total price is computed by the
// database from the stored columns so it always equals unit_price *
// ticket_amount exactly. Returns ErrBookingNotFound when the id does not
// resolve; on the read-back of a row inserted in the same transaction that
// is a visibility bug, not a recoverable condition.
func (r *BookingRepo) GetByID(ctx context.Context, bookingID uint64) (*model.Booking, error) {
	const q = `SELECT ut.id, ut.ticket_id, ut.user_id, ut.unit_price, ut.ticket_amount,
                      ut.unit_price * ut.ticket_amount,
                      DATE_FORMAT(ut.date_purchased, '%Y-%m-%dT%H:%i:%sZ')
               FROM user_ticket ut
               WHERE ut.id = ?`
	var b model.Booking
	err := conn(ctx, r.db).QueryRowContext(ctx, q, bookingID).Scan(
		&b.ID, &b.TicketID, &b.UserID, &b.UnitPrice, &b.TicketAmount, &b.TotalPrice, &b.DatePurchased,
	)
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

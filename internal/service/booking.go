// Package service contains the booking coordinator: the one code path that
// mutates ticket inventory. Everything else in the API is read-only.
package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/ticketline/ticket-shop/internal/model"
	"github.com/ticketline/ticket-shop/internal/repository"
)

// InventoryLedger is the inventory side of the booking transaction,
// implemented by repository.TicketRepo.
type InventoryLedger interface {
	DecrementRemaining(ctx context.Context, ticketID uint64, quantity uint32) (int64, error)
	Remaining(ctx context.Context, ticketID uint64) (uint32, error)
}

// BookingStore is the purchase-record side, implemented by
// repository.BookingRepo.
type BookingStore interface {
	Create(ctx context.Context, req model.BookingRequest) (uint64, error)
	GetByID(ctx context.Context, bookingID uint64) (*model.Booking, error)
}

// TxRunner runs a function inside one transaction, implemented by
// repository.TxManager.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier receives confirmed bookings after commit. Implementations must
// not influence the outcome of the booking; failures are theirs to absorb.
type Notifier interface {
	BookingConfirmed(ctx context.Context, booking model.Booking)
}

// BookingService orchestrates the booking transaction: atomically check
// availability, deduct it, and record the purchase, or fail cleanly leaving
// inventory untouched. The only synchronization it relies on is the row
// lock taken by the ledger's conditional decrement; there are no in-process
// locks and no internal retries.
type BookingService struct {
	tx       TxRunner
	ledger   InventoryLedger
	store    BookingStore
	notifier Notifier
}

// NewBookingService constructs a BookingService. notifier may be nil when
// no broker is configured.
func NewBookingService(tx TxRunner, ledger InventoryLedger, store BookingStore, notifier Notifier) *BookingService {
	if tx == nil || ledger == nil || store == nil {
		panic("nil dependency passed to NewBookingService")
	}
	return &BookingService{tx: tx, ledger: ledger, store: store, notifier: notifier}
}

// Book runs one purchase attempt. Within a single Read Committed
// transaction it:
//
//  1. applies the conditional decrement — the single authoritative gate;
//  2. on zero rows affected, reads the remaining count to tell a missing
//     ticket (*repository.TicketNotFoundError) apart from insufficient
//     inventory (*repository.InsufficientTicketsError) and rolls back;
//  3. inserts the booking row, capturing the unit price in the same
//     statement;
//  4. reads the booking back so the caller gets the exact committed state.
//
// Any error on steps 3-4 rolls the decrement back, so a booking row only
// ever becomes visible together with its durably applied decrement. The
// decrement runs first so no booking row or price capture exists for
// quantities that were never reserved.
//
// Insufficient inventory is terminal for the attempt; the service never
// retries internally. A repeated request starts from scratch against
// current state.
func (s *BookingService) Book(ctx context.Context, req model.BookingRequest) (*model.Booking, error) {
	var booking *model.Booking

	err := s.tx.WithTx(ctx, func(txCtx context.Context) error {
		affected, err := s.ledger.DecrementRemaining(txCtx, req.TicketID, req.Quantity)
		if err != nil {
			return err
		}
		if affected == 0 {
			// The second read is informational only: the count it sees can
			// be stale by the time the error reaches the caller.
			remaining, err := s.ledger.Remaining(txCtx, req.TicketID)
			if errors.Is(err, sql.ErrNoRows) {
				return &repository.TicketNotFoundError{TicketID: req.TicketID}
			}
			if err != nil {
				return err
			}
			return &repository.InsufficientTicketsError{
				TicketID:  req.TicketID,
				Requested: req.Quantity,
				Remaining: remaining,
			}
		}

		bookingID, err := s.store.Create(txCtx, req)
		if err != nil {
			return err
		}
		b, err := s.store.GetByID(txCtx, bookingID)
		if err != nil {
			return fmt.Errorf("read back booking %d: %w", bookingID, err)
		}
		booking = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Publish strictly after commit; a lost notification must never undo a
	// committed booking.
	if s.notifier != nil {
		s.notifier.BookingConfirmed(ctx, *booking)
	}
	log.Printf("booking: confirmed id=%d ticket=%d user=%d quantity=%d", booking.ID, booking.TicketID, booking.UserID, booking.TicketAmount)
	return booking, nil
}

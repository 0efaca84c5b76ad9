package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/ticketline/ticket-shop/internal/model"
	"github.com/ticketline/ticket-shop/internal/repository"
	"github.com/ticketline/ticket-shop/internal/testutil"
)

// newIntegrationService wires the real repositories and transaction manager
// against the test database, with no notifier.
func newIntegrationService(t *testing.T) (*BookingService, *repository.TicketRepo, uint64, uint64) {
	t.Helper()

	db := testutil.NewTestDB(t)
	venueID := testutil.SeedVenue(t, db)
	eventID := testutil.SeedEvent(t, db, venueID)
	testutil.SeedTier(t, db, "GA")
	ticketID := testutil.SeedTicket(t, db, eventID, "GA", 10, 25.50)
	userID := testutil.SeedUser(t, db)

	tickets := repository.NewTicketRepo(db)
	bookings := repository.NewBookingRepo(db)
	svc := NewBookingService(repository.NewTxManager(db), tickets, bookings, nil)
	return svc, tickets, ticketID, userID
}

func TestBookAgainstDatabase(t *testing.T) {
	svc, tickets, ticketID, userID := newIntegrationService(t)
	ctx := context.Background()

	b, err := svc.Book(ctx, model.BookingRequest{TicketID: ticketID, UserID: userID, Quantity: 3})
	if err != nil {
		t.Fatalf("Book: %v", err)
	}
	if b.UnitPrice != 25.50 {
		t.Fatalf("unit price = %v, want snapshot 25.50", b.UnitPrice)
	}
	if b.TotalPrice != 76.50 {
		t.Fatalf("total price = %v, want 76.50", b.TotalPrice)
	}
	if b.DatePurchased == "" {
		t.Fatal("date purchased not populated")
	}

	left, err := tickets.Remaining(ctx, ticketID)
	if err != nil {
		t.Fatalf("Remaining: %v", err)
	}
	if left != 7 {
		t.Fatalf("remaining = %d, want 7", left)
	}
}

// TestBookPriceSnapshot changes the live ticket price between two purchases
// and verifies each booking keeps the price that was current when it
// committed.
func TestBookPriceSnapshot(t *testing.T) {
	db := testutil.NewTestDB(t)
	venueID := testutil.SeedVenue(t, db)
	eventID := testutil.SeedEvent(t, db, venueID)
	testutil.SeedTier(t, db, "GA")
	ticketID := testutil.SeedTicket(t, db, eventID, "GA", 10, 25.50)
	userID := testutil.SeedUser(t, db)

	svc := NewBookingService(
		repository.NewTxManager(db),
		repository.NewTicketRepo(db),
		repository.NewBookingRepo(db),
		nil,
	)
	ctx := context.Background()

	first, err := svc.Book(ctx, model.BookingRequest{TicketID: ticketID, UserID: userID, Quantity: 2})
	if err != nil {
		t.Fatalf("first Book: %v", err)
	}

	if _, err := db.Exec(`UPDATE ticket SET price = 40.00 WHERE id = ?`, ticketID); err != nil {
		t.Fatalf("reprice ticket: %v", err)
	}

	second, err := svc.Book(ctx, model.BookingRequest{TicketID: ticketID, UserID: userID, Quantity: 2})
	if err != nil {
		t.Fatalf("second Book: %v", err)
	}

	if first.UnitPrice != 25.50 || first.TotalPrice != 51.00 {
		t.Fatalf("first booking = %+v, want 25.50 snapshot", first)
	}
	if second.UnitPrice != 40.00 || second.TotalPrice != 80.00 {
		t.Fatalf("second booking = %+v, want 40.00 snapshot", second)
	}

	// The stored row for the first booking must be unaffected by the
	// reprice.
	stored, err := repository.NewBookingRepo(db).GetByID(ctx, first.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.UnitPrice != 25.50 {
		t.Fatalf("stored unit price = %v, want 25.50", stored.UnitPrice)
	}
}

func TestBookDatabaseInsufficient(t *testing.T) {
	svc, tickets, ticketID, userID := newIntegrationService(t)
	ctx := context.Background()

	_, err := svc.Book(ctx, model.BookingRequest{TicketID: ticketID, UserID: userID, Quantity: 11})

	var insufficient *repository.InsufficientTicketsError
	if !errors.As(err, &insufficient) {
		t.Fatalf("error = %v, want InsufficientTicketsError", err)
	}
	if insufficient.Remaining != 10 || insufficient.Requested != 11 {
		t.Fatalf("error = %+v", insufficient)
	}

	left, err := tickets.Remaining(ctx, ticketID)
	if err != nil {
		t.Fatalf("Remaining: %v", err)
	}
	if left != 10 {
		t.Fatalf("remaining = %d, want untouched 10", left)
	}
}

func TestBookDatabaseTicketNotFound(t *testing.T) {
	svc, _, ticketID, userID := newIntegrationService(t)

	_, err := svc.Book(context.Background(), model.BookingRequest{TicketID: ticketID + 100, UserID: userID, Quantity: 1})

	var notFound *repository.TicketNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("error = %v, want TicketNotFoundError", err)
	}
}

// TestBookDatabaseConcurrent runs many concurrent full booking transactions
// against MySQL. Total granted tickets must equal the seeded inventory and
// exactly one booking row must exist per grant.
func TestBookDatabaseConcurrent(t *testing.T) {
	db := testutil.NewTestDB(t)
	venueID := testutil.SeedVenue(t, db)
	eventID := testutil.SeedEvent(t, db, venueID)
	testutil.SeedTier(t, db, "GA")

	const initial = 8
	const workers = 24
	ticketID := testutil.SeedTicket(t, db, eventID, "GA", initial, 25.50)
	userID := testutil.SeedUser(t, db)

	tickets := repository.NewTicketRepo(db)
	svc := NewBookingService(repository.NewTxManager(db), tickets, repository.NewBookingRepo(db), nil)

	var wg sync.WaitGroup
	results := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Book(context.Background(), model.BookingRequest{TicketID: ticketID, UserID: userID, Quantity: 1})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var granted int
	for err := range results {
		switch {
		case err == nil:
			granted++
		default:
			var insufficient *repository.InsufficientTicketsError
			if !errors.As(err, &insufficient) {
				t.Fatalf("unexpected error kind: %v", err)
			}
		}
	}
	if granted != initial {
		t.Fatalf("granted = %d, want %d", granted, initial)
	}

	left, err := tickets.Remaining(context.Background(), ticketID)
	if err != nil {
		t.Fatalf("Remaining: %v", err)
	}
	if left != 0 {
		t.Fatalf("remaining = %d, want 0", left)
	}

	var rows int
	if err := db.QueryRow(`SELECT COUNT(*) FROM user_ticket WHERE ticket_id = ?`, ticketID).Scan(&rows); err != nil {
		t.Fatalf("count bookings: %v", err)
	}
	if rows != granted {
		t.Fatalf("%d booking rows for %d grants", rows, granted)
	}
}

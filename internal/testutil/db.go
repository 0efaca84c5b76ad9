// Package testutil provides helpers for integration tests that need a real
// MySQL database. Tests calling NewTestDB skip automatically when no
// database is reachable, so the unit test suite stays runnable everywhere.
package testutil

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/ticketline/ticket-shop/migrations"
)

// DefaultDSN is used when TEST_DATABASE_DSN is not set. It matches the
// docker-compose development database.
const DefaultDSN = "root@tcp(localhost:3306)/ticket_shop_test?charset=utf8mb4&parseTime=true&loc=UTC&multiStatements=true"

// NewTestDB opens the test database, applies the schema and truncates all
// tables so every test starts from a clean slate. The test is skipped when
// the database is unreachable.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = DefaultDSN
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		t.Skipf("test database not available at %s: %v", dsn, err)
	}

	if err := migrations.Apply(context.Background(), db); err != nil {
		db.Close()
		t.Fatalf("apply migrations: %v", err)
	}

	TruncateAll(t, db)

	t.Cleanup(func() { db.Close() })
	return db
}

// TruncateAll empties every table. Foreign key checks are disabled for the
// duration so truncation order does not matter.
func TruncateAll(t *testing.T, db *sql.DB) {
	t.Helper()

	tables := []string{"user_ticket", "ticket", "price_tier", "event", "venue", "user"}
	if _, err := db.Exec("SET FOREIGN_KEY_CHECKS = 0"); err != nil {
		t.Fatalf("disable fk checks: %v", err)
	}
	for _, tbl := range tables {
		if _, err := db.Exec("TRUNCATE TABLE " + tbl); err != nil {
			t.Fatalf("truncate %s: %v", tbl, err)
		}
	}
	if _, err := db.Exec("SET FOREIGN_KEY_CHECKS = 1"); err != nil {
		t.Fatalf("enable fk checks: %v", err)
	}
}

// SeedVenue inserts a venue and returns its id.
func SeedVenue(t *testing.T, db *sql.DB) uint64 {
	t.Helper()

	res, err := db.Exec(
		`INSERT INTO venue (name, address, city, region, country_code, timezone)
		 VALUES ('Grand Hall', '1 Main St', 'Berlin', NULL, 'DE', 'Europe/Berlin')`,
	)
	if err != nil {
		t.Fatalf("seed venue: %v", err)
	}
	id, _ := res.LastInsertId()
	return uint64(id)
}

// SeedEvent inserts an event at the given venue and returns its id.
func SeedEvent(t *testing.T, db *sql.DB, venueID uint64) uint64 {
	t.Helper()

	res, err := db.Exec(
		`INSERT INTO event (venue_id, name, description, start_time, end_time)
		 VALUES (?, 'Summer Concert', 'Open air show', '2026-07-01 19:00:00', '2026-07-01 23:00:00')`,
		venueID,
	)
	if err != nil {
		t.Fatalf("seed event: %v", err)
	}
	id, _ := res.LastInsertId()
	return uint64(id)
}

// SeedTier inserts a price tier with the given code.
func SeedTier(t *testing.T, db *sql.DB, code string) {
	t.Helper()

	_, err := db.Exec(
		`INSERT INTO price_tier (code, display_name) VALUES (?, ?)`,
		code, code+" admission",
	)
	if err != nil {
		t.Fatalf("seed price tier %s: %v", code, err)
	}
}

// SeedTicket inserts a ticket inventory row and returns its id.
func SeedTicket(t *testing.T, db *sql.DB, eventID uint64, tierCode string, remaining uint32, price float64) uint64 {
	t.Helper()

	res, err := db.Exec(
		`INSERT INTO ticket (event_id, tier_code, capacity, remaining, price)
		 VALUES (?, ?, ?, ?, ?)`,
		eventID, tierCode, remaining, remaining, price,
	)
	if err != nil {
		t.Fatalf("seed ticket: %v", err)
	}
	id, _ := res.LastInsertId()
	return uint64(id)
}

// SeedUser inserts a user and returns its id.
func SeedUser(t *testing.T, db *sql.DB) uint64 {
	t.Helper()

	res, err := db.Exec(
		`INSERT INTO user (first_name, last_name, address, city, region, country_code, timezone)
		 VALUES ('Ada', 'Lovelace', '2 Side St', 'London', NULL, 'GB', 'Europe/London')`,
	)
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	id, _ := res.LastInsertId()
	return uint64(id)
}

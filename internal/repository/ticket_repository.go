package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/ticketline/ticket-shop/internal/model"
)

// TicketRepo provides access to the ticket table: the durable inventory
// ledger plus the read-only catalog queries. Each ticket row tracks the
// capacity, remaining count and current price of one sellable unit (a price
// tier of an event). The remaining column is mutated only through
// DecrementRemaining; no code path reads remaining and writes back a value
// derived from that read.
type TicketRepo struct {
	db *sql.DB
}

// NewTicketRepo returns a new TicketRepo bound to the given database.
func NewTicketRepo(db *sql.DB) *TicketRepo { return &TicketRepo{db: db} }

// DecrementRemaining subtracts quantity from a ticket's remaining count,
// but only if enough remains. The availability check and the mutation are
// one conditional UPDATE evaluated under the row's exclusive lock, so there
// is no check-then-act window for concurrent bookings to race through.
// It returns the number of rows modified: 1 on success, 0 when the ticket
// does not exist or has fewer than quantity remaining. When 0 is returned
// the row is untouched.
//
// Inside a WithTx scope the statement runs on the scope's transaction, so a
// later rollback restores the decrement.
func (r *TicketRepo) DecrementRemaining(ctx context.Context, ticketID uint64, quantity uint32) (int64, error) {
	const q = `UPDATE ticket SET remaining = remaining - ? WHERE id = ? AND remaining >= ?`
	res, err := conn(ctx, r.db).ExecContext(ctx, q, quantity, ticketID, quantity)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Remaining reads a ticket's current remaining count. It is used after a
// failed decrement to tell "ticket missing" apart from "not enough left"
// and to report the count in the conflict response; under concurrent load
// that count can already be stale by the time the caller sees it.
// Returns sql.ErrNoRows when the ticket does not exist.
func (r *TicketRepo) Remaining(ctx context.Context, ticketID uint64) (uint32, error) {
	var remaining uint32
	err := conn(ctx, r.db).QueryRowContext(ctx, `SELECT remaining FROM ticket WHERE id = ?`, ticketID).Scan(&remaining)
	if err != nil {
		return 0, err
	}
	return remaining, nil
}

// GetByID returns one ticket joined with its tier, event and venue.
// Returns *TicketNotFoundError when the id does not resolve.
func (r *TicketRepo) GetByID(ctx context.Context, ticketID uint64) (*model.Ticket, error) {
	const q = `SELECT t.id, t.tier_code, pt.display_name, t.capacity, t.remaining, t.price,
                      DATE_FORMAT(t.created_at, '%Y-%m-%dT%H:%i:%sZ'),
                      DATE_FORMAT(t.last_updated, '%Y-%m-%dT%H:%i:%sZ'),
                      e.id, e.name, e.description,
                      DATE_FORMAT(e.start_time, '%Y-%m-%dT%H:%i:%sZ'),
                      DATE_FORMAT(e.end_time, '%Y-%m-%dT%H:%i:%sZ'),
                      v.id, v.name, v.address, v.city, v.region, v.country_code, v.timezone
               FROM ticket t
               INNER JOIN price_tier pt ON pt.code = t.tier_code
               INNER JOIN event e ON e.id = t.event_id
               INNER JOIN venue v ON v.id = e.venue_id
               WHERE t.id = ?`
	var tk model.Ticket
	var description, region sql.NullString
	err := r.db.QueryRowContext(ctx, q, ticketID).Scan(
		&tk.ID, &tk.TierCode, &tk.TierDisplayName, &tk.Capacity, &tk.Remaining, &tk.Price,
		&tk.CreatedAt, &tk.LastUpdated,
		&tk.Event.ID, &tk.Event.Name, &description,
		&tk.Event.StartTime, &tk.Event.EndTime,
		&tk.Event.Venue.ID, &tk.Event.Venue.Name, &tk.Event.Venue.Address, &tk.Event.Venue.City,
		&region, &tk.Event.Venue.CountryCode, &tk.Event.Venue.Timezone,
	)
	if err == sql.ErrNoRows {
		return nil, &TicketNotFoundError{TicketID: ticketID}
	}
	if err != nil {
		return nil, err
	}
	if description.Valid {
		d := description.String
		tk.Event.Description = &d
	}
	if region.Valid {
		rg := region.String
		tk.Event.Venue.Region = &rg
	}
	return &tk, nil
}

// TicketFilter narrows the ticket listing. Zero values mean "no filter".
// Date bounds apply to the event's start and end times.
type TicketFilter struct {
	TicketIDs        []uint64
	TierCodes        []string
	EventName        string
	EventStartDate   *time.Time
	EventEndDate     *time.Time
	VenueName        string
	VenueCountryCode string
	Limit            uint32
	Offset           uint32
}

func (f TicketFilter) whereClause() (string, []any) {
	conditions := make([]string, 0, 4)
	args := make([]any, 0, 4)
	if len(f.TicketIDs) > 0 {
		placeholders := make([]string, 0, len(f.TicketIDs))
		for _, id := range f.TicketIDs {
			placeholders = append(placeholders, "?")
			args = append(args, id)
		}
		conditions = append(conditions, "t.id IN ("+strings.Join(placeholders, ",")+")")
	}
	if len(f.TierCodes) > 0 {
		placeholders := make([]string, 0, len(f.TierCodes))
		for _, code := range f.TierCodes {
			placeholders = append(placeholders, "?")
			args = append(args, code)
		}
		conditions = append(conditions, "t.tier_code IN ("+strings.Join(placeholders, ",")+")")
	}
	if f.EventName != "" {
		conditions = append(conditions, "e.name LIKE ?")
		args = append(args, "%"+f.EventName+"%")
	}
	if f.EventStartDate != nil {
		conditions = append(conditions, "e.start_time >= ?")
		args = append(args, f.EventStartDate.UTC())
	}
	if f.EventEndDate != nil {
		conditions = append(conditions, "e.end_time <= ?")
		args = append(args, f.EventEndDate.UTC())
	}
	if f.VenueName != "" {
		conditions = append(conditions, "v.name LIKE ?")
		args = append(args, "%"+f.VenueName+"%")
	}
	if f.VenueCountryCode != "" {
		conditions = append(conditions, "v.country_code = ?")
		args = append(args, f.VenueCountryCode)
	}
	if len(conditions) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}

// Count returns the total number of tickets matching the filter, ignoring
// pagination. It backs the total field of the paginated response.
func (r *TicketRepo) Count(ctx context.Context, f TicketFilter) (uint64, error) {
	where, args := f.whereClause()
	q := `SELECT COUNT(*)
          FROM ticket t
          INNER JOIN event e ON e.id = t.event_id
          INNER JOIN venue v ON v.id = e.venue_id
          INNER JOIN price_tier pt ON pt.code = t.tier_code ` + where
	var total uint64
	if err := r.db.QueryRowContext(ctx, q, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

// List returns a page of simplified ticket rows matching the filter,
// ordered by event start time then ticket id for deterministic output.
func (r *TicketRepo) List(ctx context.Context, f TicketFilter) ([]model.SimplifiedTicket, error) {
	where, args := f.whereClause()
	q := `SELECT t.id, e.name, pt.display_name, t.remaining, t.price,
                 v.name, v.city, v.country_code,
                 DATE_FORMAT(e.start_time, '%Y-%m-%dT%H:%i:%sZ')
          FROM ticket t
          INNER JOIN event e ON e.id = t.event_id
          INNER JOIN venue v ON v.id = e.venue_id
          INNER JOIN price_tier pt ON pt.code = t.tier_code ` + where + `
          ORDER BY e.start_time, t.id
          LIMIT ? OFFSET ?`
	args = append(args, f.Limit, f.Offset)
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tickets := make([]model.SimplifiedTicket, 0)
	for rows.Next() {
		var tk model.SimplifiedTicket
		if err := rows.Scan(
			&tk.ID, &tk.EventName, &tk.TierDisplayName, &tk.Remaining, &tk.Price,
			&tk.VenueName, &tk.VenueCity, &tk.VenueCountryCode, &tk.EventStartTime,
		); err != nil {
			return nil, err
		}
		tickets = append(tickets, tk)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tickets, nil
}

package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/ticketline/ticket-shop/internal/model"
)

// EventRepo provides read-only access to events and their venues. Events
// are catalog data; nothing here participates in the booking transaction.
type EventRepo struct {
	db *sql.DB
}

// NewEventRepo returns a new EventRepo bound to the given database.
func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{db: db} }

// EventFilter narrows the event listing. Zero values mean "no filter".
type EventFilter struct {
	EventIDs         []uint64
	EventName        string
	EventStartDate   *time.Time
	EventEndDate     *time.Time
	VenueName        string
	VenueCountryCode string
	Limit            uint32
	Offset           uint32
}

func (f EventFilter) whereClause() (string, []any) {
	conditions := make([]string, 0, 4)
	args := make([]any, 0, 4)
	if len(f.EventIDs) > 0 {
		placeholders := make([]string, 0, len(f.EventIDs))
		for _, id := range f.EventIDs {
			placeholders = append(placeholders, "?")
			args = append(args, id)
		}
		conditions = append(conditions, "e.id IN ("+strings.Join(placeholders, ",")+")")
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

// Count returns the total number of events matching the filter.
func (r *EventRepo) Count(ctx context.Context, f EventFilter) (uint64, error) {
	where, args := f.whereClause()
	q := `SELECT COUNT(*)
          FROM event e
          INNER JOIN venue v ON v.id = e.venue_id ` + where
	var total uint64
	if err := r.db.QueryRowContext(ctx, q, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

// List returns a page of events with their venue summary, ordered by start
// time then id.
func (r *EventRepo) List(ctx context.Context, f EventFilter) ([]model.EventListItem, error) {
	where, args := f.whereClause()
	q := `SELECT e.id, e.name, e.description,
                 DATE_FORMAT(e.start_time, '%Y-%m-%dT%H:%i:%sZ'),
                 DATE_FORMAT(e.end_time, '%Y-%m-%dT%H:%i:%sZ'),
                 v.name, v.city, v.country_code, v.timezone
          FROM event e
          INNER JOIN venue v ON v.id = e.venue_id ` + where + `
          ORDER BY e.start_time, e.id
          LIMIT ? OFFSET ?`
	args = append(args, f.Limit, f.Offset)
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]model.EventListItem, 0)
	for rows.Next() {
		var ev model.EventListItem
		var description sql.NullString
		if err := rows.Scan(
			&ev.ID, &ev.Name, &description, &ev.StartTime, &ev.EndTime,
			&ev.VenueName, &ev.VenueCity, &ev.VenueCountryCode, &ev.VenueTimezone,
		); err != nil {
			return nil, err
		}
		if description.Valid {
			d := description.String
			ev.Description = &d
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

// GetByID returns one event with its full venue and the availability of
// every price tier sold for it. Returns ErrEventNotFound when the id does
// not resolve.
func (r *EventRepo) GetByID(ctx context.Context, eventID uint64) (*model.EventWithTiers, error) {
	const q = `SELECT e.id, e.name, e.description,
                      DATE_FORMAT(e.start_time, '%Y-%m-%dT%H:%i:%sZ'),
                      DATE_FORMAT(e.end_time, '%Y-%m-%dT%H:%i:%sZ'),
                      v.id, v.name, v.address, v.city, v.region, v.country_code, v.timezone
               FROM event e
               INNER JOIN venue v ON v.id = e.venue_id
               WHERE e.id = ?`
	var ev model.EventWithTiers
	var description, region sql.NullString
	err := r.db.QueryRowContext(ctx, q, eventID).Scan(
		&ev.ID, &ev.Name, &description, &ev.StartTime, &ev.EndTime,
		&ev.Venue.ID, &ev.Venue.Name, &ev.Venue.Address, &ev.Venue.City,
		&region, &ev.Venue.CountryCode, &ev.Venue.Timezone,
	)
	if err == sql.ErrNoRows {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, err
	}
	if description.Valid {
		d := description.String
		ev.Description = &d
	}
	if region.Valid {
		rg := region.String
		ev.Venue.Region = &rg
	}

	const tierQ = `SELECT t.tier_code, t.id, pt.display_name, t.remaining, t.capacity, t.price
                   FROM ticket t
                   INNER JOIN price_tier pt ON pt.code = t.tier_code
                   WHERE t.event_id = ?
                   ORDER BY t.tier_code`
	rows, err := r.db.QueryContext(ctx, tierQ, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ev.Tiers = make(map[string]model.TierAvailability)
	for rows.Next() {
		var code string
		var tier model.TierAvailability
		if err := rows.Scan(&code, &tier.TicketID, &tier.TierDisplayName, &tier.Remaining, &tier.Capacity, &tier.Price); err != nil {
			return nil, err
		}
		ev.Tiers[code] = tier
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &ev, nil
}

package model

// EventListItem is the flattened row returned by the event listing.
type EventListItem struct {
	ID               uint64  `json:"id"`
	Name             string  `json:"name"`
	Description      *string `json:"description"`
	StartTime        string  `json:"startTime"`
	EndTime          string  `json:"endTime"`
	VenueName        string  `json:"venueName"`
	VenueCity        string  `json:"venueCity"`
	VenueCountryCode string  `json:"venueCountryCode"`
	VenueTimezone    string  `json:"venueTimezone"`
}

// EventDetail is an event with its full venue, embedded in ticket detail
// responses and returned by the event detail endpoint.
type EventDetail struct {
	ID          uint64  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	StartTime   string  `json:"startTime"`
	EndTime     string  `json:"endTime"`
	Venue       Venue   `json:"venue"`
}

// TierAvailability summarises one price tier of an event: which ticket row
// backs it and how much inventory is left.
type TierAvailability struct {
	TicketID        uint64  `json:"ticketId"`
	TierDisplayName string  `json:"tierDisplayName"`
	Remaining       uint32  `json:"remaining"`
	Capacity        uint32  `json:"capacity"`
	Price           float64 `json:"price"`
}

// EventWithTiers is the event detail response including per-tier
// availability keyed by tier code.
type EventWithTiers struct {
	EventDetail
	Tiers map[string]TierAvailability `json:"tiers"`
}

package model

// Ticket is the detailed view of one sellable inventory unit, joined with
// its event and venue for presentation.  Remaining is mutated only by the
// booking transaction's conditional decrement; everything else is immutable
// after setup.
type Ticket struct {
	ID              uint64      `json:"id"`
	TierCode        string      `json:"tierCode"`
	TierDisplayName string      `json:"tierDisplayName"`
	Capacity        uint32      `json:"capacity"`
	Remaining       uint32      `json:"remaining"`
	Price           float64     `json:"price"`
	CreatedAt       string      `json:"createdAt"`
	LastUpdated     string      `json:"lastUpdated"`
	Event           EventDetail `json:"event"`
}

// SimplifiedTicket is the flattened row returned by the ticket listing.
type SimplifiedTicket struct {
	ID               uint64  `json:"id"`
	EventName        string  `json:"eventName"`
	TierDisplayName  string  `json:"tierDisplayName"`
	Remaining        uint32  `json:"remaining"`
	Price            float64 `json:"price"`
	VenueName        string  `json:"venueName"`
	VenueCity        string  `json:"venueCity"`
	VenueCountryCode string  `json:"venueCountryCode"`
	EventStartTime   string  `json:"eventStartTime"`
}

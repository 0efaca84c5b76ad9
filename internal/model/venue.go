package model

// Venue is the full venue record as embedded in event and ticket details.
// Region is nullable in the schema.
type Venue struct {
	ID          uint64  `json:"id"`
	Name        string  `json:"name"`
	Address     string  `json:"address"`
	City        string  `json:"city"`
	Region      *string `json:"region"`
	CountryCode string  `json:"countryCode"`
	Timezone    string  `json:"timezone"`
}

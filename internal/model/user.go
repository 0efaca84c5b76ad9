package model

// SimplifiedUser is the row returned by the user listing.
type SimplifiedUser struct {
	ID          uint64 `json:"id"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	City        string `json:"city"`
	CountryCode string `json:"countryCode"`
}

// User is the complete user record returned by the user detail endpoint.
type User struct {
	ID          uint64  `json:"id"`
	FirstName   string  `json:"firstName"`
	LastName    string  `json:"lastName"`
	Address     string  `json:"address"`
	City        string  `json:"city"`
	Region      *string `json:"region"`
	CountryCode string  `json:"countryCode"`
	Timezone    string  `json:"timezone"`
}

package models

// FlightSearchParams is the request contract for the flight search provider.
type FlightSearchParams struct {
	Origin        string
	Destination   string
	DepartureDate string
	ReturnDate    string
	Adults        int
	TravelClass   TravelClass
	Max           int
}

// FlightOffer is one priced flight result returned by the provider, ordered
// by the provider's own relevance sort.
type FlightOffer struct {
	ID                     string      `json:"id"`
	Price                  Price       `json:"price"`
	Itineraries            []Itinerary `json:"itineraries"`
	ValidatingAirlineCodes []string    `json:"validatingAirlineCodes"`
}

// HotelSearchParams is the request contract for the hotel search provider.
type HotelSearchParams struct {
	CityCode     string
	CheckInDate  string
	CheckOutDate string
	Adults       int
	Rooms        int
	Max          int
}

// HotelAddress mirrors the provider's structured hotel address.
type HotelAddress struct {
	Lines       []string `json:"lines,omitempty"`
	PostalCode  string   `json:"postalCode,omitempty"`
	CityName    string   `json:"cityName,omitempty"`
	CountryCode string   `json:"countryCode,omitempty"`
}

// HotelOffer is one priced hotel result returned by the provider.
type HotelOffer struct {
	HotelID   string       `json:"hotelId"`
	Name      string       `json:"name"`
	Price     Price        `json:"price"`
	Rating    float64      `json:"rating,omitempty"`
	Address   HotelAddress `json:"address,omitempty"`
	Amenities []string     `json:"amenities,omitempty"`
	Photos    []string     `json:"photos,omitempty"`
	Available bool         `json:"available"`
}

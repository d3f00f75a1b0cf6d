package models

// Price is a priced amount as returned by the search providers. Total stays
// a string because providers return decimal strings, and "0" is the sentinel
// value for failed lookups.
type Price struct {
	Total    string `json:"total"`
	Currency string `json:"currency"`
}

// FlightPoint is one endpoint (departure or arrival) of a flight segment.
type FlightPoint struct {
	IataCode string `json:"iataCode"`
	At       string `json:"at"`
}

// FlightSegment is one leg within a flight itinerary.
type FlightSegment struct {
	Departure   FlightPoint `json:"departure"`
	Arrival     FlightPoint `json:"arrival"`
	CarrierCode string      `json:"carrierCode"`
	Number      string      `json:"number"`
	Duration    string      `json:"duration"`
}

// Itinerary is an ordered sequence of flight segments with a total duration.
type Itinerary struct {
	Duration string          `json:"duration"`
	Segments []FlightSegment `json:"segments"`
}

// TransportData is the resolved availability for one transport suggestion.
// It is always a well-formed value: when NotFound is true the price is
// zeroed and the itineraries are empty, and callers must branch on NotFound
// rather than on nil checks.
type TransportData struct {
	ID                     string      `json:"id"`
	Kind                   string      `json:"type"` // "flight" or "transfer"
	Price                  Price       `json:"price"`
	Itineraries            []Itinerary `json:"itineraries,omitempty"`
	ValidatingAirlineCodes []string    `json:"validatingAirlineCodes,omitempty"`
	NotFound               bool        `json:"notFound,omitempty"`
}

// HotelData is the resolved availability for one hotel suggestion. Same
// sentinel contract as TransportData.
type HotelData struct {
	HotelID   string   `json:"hotelId"`
	Name      string   `json:"name"`
	Price     Price    `json:"price"`
	Rating    float64  `json:"rating,omitempty"`
	Address   string   `json:"address,omitempty"`
	Amenities []string `json:"amenities,omitempty"`
	Photos    []string `json:"photos,omitempty"`
	Available bool     `json:"available"`
	NotFound  bool     `json:"notFound,omitempty"`
}

// TransportDataMap keys resolved transport data by suggested name.
type TransportDataMap map[string]TransportData

// HotelDataMap keys resolved hotel data by suggested name.
type HotelDataMap map[string]HotelData

// NotFoundTransport builds the sentinel value for a failed or skipped
// transport lookup.
func NotFoundTransport(kind string) TransportData {
	return TransportData{
		Kind:     kind,
		Price:    Price{Total: "0", Currency: "USD"},
		NotFound: true,
	}
}

// NotFoundHotel builds the sentinel value for a failed or skipped hotel
// lookup, carrying the suggested name so the caller can still render it.
func NotFoundHotel(name string) HotelData {
	return HotelData{
		Name:     name,
		Price:    Price{Total: "0", Currency: "USD"},
		NotFound: true,
	}
}
